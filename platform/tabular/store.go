// Package tabular abstracts the external tabular store the application
// persists its records in. The store is deliberately dumb: opaque rows grouped
// under a logical table name, with whole-table read, whole-table write and
// append operations. Repositories layer structure and caching on top.
package tabular

import "context"

// Row is one opaque record in a table.
type Row map[string]interface{}

// Store is the contract to the external tabular store.
type Store interface {
	// Read returns all rows of the given table in insertion order.
	Read(ctx context.Context, table string) ([]Row, error)
	// Append adds rows to the end of the table.
	Append(ctx context.Context, table string, rows ...Row) error
	// Write replaces the entire contents of the table.
	Write(ctx context.Context, table string, rows []Row) error
}

// Well-known table names.
const (
	TableLeads             = "leads"
	TableDiscoverySessions = "discovery_sessions"
	TableClients           = "clients"
	TableProjects          = "projects"
)
