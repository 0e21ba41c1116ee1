package tabular

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists rows as JSONB documents in a single tabular_rows
// table, keyed by logical table name. This keeps the store contract identical
// to the spreadsheet-style backend it replaces.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Read returns all rows of the table in insertion order.
func (s *PostgresStore) Read(ctx context.Context, table string) ([]Row, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doc
		FROM tabular_rows
		WHERE tab_name = $1
		ORDER BY position ASC
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var row Row
		if err := json.Unmarshal(doc, &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// Append adds rows to the end of the table.
func (s *PostgresStore) Append(ctx context.Context, table string, rowsIn ...Row) error {
	if len(rowsIn) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, row := range rowsIn {
		doc, err := json.Marshal(row)
		if err != nil {
			return err
		}
		batch.Queue(`INSERT INTO tabular_rows (tab_name, doc) VALUES ($1, $2)`, table, doc)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range rowsIn {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// Write replaces the entire contents of the table atomically.
func (s *PostgresStore) Write(ctx context.Context, table string, rowsIn []Row) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tabular_rows WHERE tab_name = $1`, table); err != nil {
		return err
	}

	for _, row := range rowsIn {
		doc, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO tabular_rows (tab_name, doc) VALUES ($1, $2)`, table, doc); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)
