package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Tally/internal/core/voting"
	"Tally/internal/db/postgres"
)

func TestTableMappings_Parses(t *testing.T) {
	cfg := Config{ResolverTables: "post=posts:id, comment=comments:comment_id"}

	tables, err := cfg.TableMappings()
	require.NoError(t, err)

	assert.Equal(t, postgres.TableMapping{Table: "posts", IDColumn: "id"}, tables[voting.Kind("post")])
	assert.Equal(t, postgres.TableMapping{Table: "comments", IDColumn: "comment_id"}, tables[voting.Kind("comment")])
}

func TestTableMappings_DefaultIDColumn(t *testing.T) {
	cfg := Config{ResolverTables: "post=posts"}

	tables, err := cfg.TableMappings()
	require.NoError(t, err)
	assert.Equal(t, "id", tables[voting.Kind("post")].IDColumn)
}

func TestTableMappings_RejectsMalformedEntry(t *testing.T) {
	cfg := Config{ResolverTables: "posts"}

	_, err := cfg.TableMappings()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, 100, cfg.RateLimit)
}
