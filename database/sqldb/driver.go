package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/schemagen/database"
)

// Dialect names.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite3"
	Postgres = "postgres"
)

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Driver runs the queries of the generated schemas on a database/sql
// connection.
type Driver struct {
	ExecQuerier
	dialect string
}

// Open wraps the database/sql.Open method and returns a Driver. The
// driver name is also the dialect unless it names a known one by prefix.
func Open(driverName, source string) (*Driver, error) {
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, err
	}
	return OpenDB(driverName, db), nil
}

// OpenDB wraps the given database/sql.DB with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return &Driver{ExecQuerier: db, dialect: dialect}
}

// Dialect returns the SQL dialect of the driver.
func (d *Driver) Dialect() string {
	for _, name := range []string{MySQL, SQLite, Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	if d.dialect == "sqlite" {
		return SQLite
	}
	return d.dialect
}

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

// Select implements database.Database.
func (d *Driver) Select(ctx context.Context, opt database.SelectOption, query *database.Query) ([]database.Row, error) {
	b := d.builder()
	b.WriteString("SELECT ")
	if len(opt.Columns) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(opt.Columns, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(from(opt))
	if err := b.where(query); err != nil {
		return nil, err
	}
	b.order(query)
	b.page(query)
	rows, err := d.QueryContext(ctx, b.String(), b.args...)
	if err != nil {
		return nil, fmt.Errorf("sqldb: select: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Count implements database.Database.
func (d *Driver) Count(ctx context.Context, opt database.SelectOption, query *database.Query) (int, error) {
	b := d.builder()
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(from(opt))
	if err := b.where(query); err != nil {
		return 0, err
	}
	rows, err := d.QueryContext(ctx, b.String(), b.args...)
	if err != nil {
		return 0, fmt.Errorf("sqldb: count: %w", err)
	}
	defer rows.Close()
	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("sqldb: count: %w", err)
		}
	}
	return n, rows.Err()
}

// Insert implements database.Database. Postgres does not report the
// inserted id, so Insert returns 0 on that dialect.
func (d *Driver) Insert(ctx context.Context, table string, fields database.Fields) (int64, error) {
	b := d.builder()
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	columns := sortedColumns(fields)
	switch {
	case len(columns) > 0:
		b.WriteString(" (")
		b.WriteString(strings.Join(columns, ", "))
		b.WriteString(") VALUES (")
		for i, c := range columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.arg(fields[c])
		}
		b.WriteString(")")
	case d.Dialect() == MySQL:
		b.WriteString(" () VALUES ()")
	default:
		b.WriteString(" DEFAULT VALUES")
	}
	res, err := d.ExecContext(ctx, b.String(), b.args...)
	if err != nil {
		return 0, fmt.Errorf("sqldb: insert: %w", err)
	}
	if d.Dialect() == Postgres {
		return 0, nil
	}
	return res.LastInsertId()
}

// Update implements database.Database. Nothing is updated when fields is
// empty.
func (d *Driver) Update(ctx context.Context, table string, fields database.Fields, query *database.Query) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	b := d.builder()
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for i, c := range sortedColumns(fields) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c)
		b.WriteString(" = ")
		b.arg(fields[c])
	}
	if err := b.where(query); err != nil {
		return 0, err
	}
	return d.exec(ctx, "update", b)
}

// Delete implements database.Database.
func (d *Driver) Delete(ctx context.Context, table string, query *database.Query) (int64, error) {
	b := d.builder()
	b.WriteString("DELETE FROM ")
	b.WriteString(table)
	if err := b.where(query); err != nil {
		return 0, err
	}
	return d.exec(ctx, "delete", b)
}

func (d *Driver) exec(ctx context.Context, op string, b *builder) (int64, error) {
	res, err := d.ExecContext(ctx, b.String(), b.args...)
	if err != nil {
		return 0, fmt.Errorf("sqldb: %s: %w", op, err)
	}
	return res.RowsAffected()
}

func (d *Driver) builder() *builder {
	return &builder{postgres: d.Dialect() == Postgres}
}

func from(opt database.SelectOption) string {
	if opt.From != "" {
		return opt.From
	}
	return opt.Table
}

// scanRows reads every row keyed by column name. Byte slices are
// returned as strings.
func scanRows(rows *sql.Rows) ([]database.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqldb: columns: %w", err)
	}
	var list []database.Row
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("sqldb: scan: %w", err)
		}
		row := make(database.Row, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

var _ database.Database = (*Driver)(nil)
