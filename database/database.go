package database

import (
	"context"
	"errors"
)

// ErrEmptyQuery is returned by the generated writes that would otherwise
// match every row of a table.
var ErrEmptyQuery = errors.New("database: empty query")

// Fields holds column values keyed by storage column.
type Fields map[string]any

// SelectOption describes what a select reads: the main table, the FROM
// expression with every join and count subquery, and the column list.
// EncryptKey is set by schemas with encrypted columns.
type SelectOption struct {
	Table      string
	From       string
	Columns    []string
	EncryptKey string
}

// Database is implemented by the application's driver.
type Database interface {
	// Select returns the rows matching the query.
	Select(ctx context.Context, opt SelectOption, query *Query) ([]Row, error)
	// Count returns the number of rows matching the query.
	Count(ctx context.Context, opt SelectOption, query *Query) (int, error)
	// Insert inserts a row and returns its auto-increment id, if any.
	Insert(ctx context.Context, table string, fields Fields) (int64, error)
	// Update updates the rows matching the query.
	Update(ctx context.Context, table string, fields Fields, query *Query) (int64, error)
	// Delete deletes the rows matching the query.
	Delete(ctx context.Context, table string, query *Query) (int64, error)
}
