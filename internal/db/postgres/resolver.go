package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/lib/pq"

	"Tally/internal/core/voting"
)

// TableMapping names the table and id column backing one kind.
type TableMapping struct {
	Table    string
	IDColumn string
}

// identPattern restricts table and column names to plain identifiers.
// Table names cannot be bound as query parameters, so they are validated
// once at construction instead.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type tableResolver struct {
	db     *sql.DB
	tables map[voting.Kind]TableMapping
}

// NewTableResolver creates a resolver that maps each kind to a database
// table. Resolved objects are returned as raw JSON rows, so the resolver
// needs no knowledge of the objects' shapes.
func NewTableResolver(db *sql.DB, tables map[voting.Kind]TableMapping) (voting.Resolver, error) {
	for kind, mapping := range tables {
		if !identPattern.MatchString(mapping.Table) {
			return nil, fmt.Errorf("invalid table name %q for kind %q", mapping.Table, kind)
		}
		if !identPattern.MatchString(mapping.IDColumn) {
			return nil, fmt.Errorf("invalid id column %q for kind %q", mapping.IDColumn, kind)
		}
	}
	return &tableResolver{db: db, tables: tables}, nil
}

// Resolve fetches the still-existing rows for the given ids in one query,
// keyed by id. Deleted objects are simply absent from the result.
func (r *tableResolver) Resolve(ctx context.Context, kind voting.Kind, ids []int64) (map[int64]any, error) {
	result := make(map[int64]any, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	mapping, ok := r.tables[kind]
	if !ok {
		return nil, fmt.Errorf("no table mapped for kind %q", kind)
	}

	query := fmt.Sprintf(
		`SELECT t.%s, row_to_json(t) FROM %s t WHERE t.%s = ANY($1)`,
		mapping.IDColumn, mapping.Table, mapping.IDColumn,
	)

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, wrapStoreErr("failed to resolve objects", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan resolved object: %w", err)
		}
		result[id] = json.RawMessage(raw)
	}

	if err = rows.Err(); err != nil {
		return nil, wrapStoreErr("error iterating resolved objects", err)
	}

	return result, nil
}
