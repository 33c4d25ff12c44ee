// Package sqldb implements database.Database on top of database/sql.
//
// The driver renders the queries of the generated schemas for MySQL,
// SQLite and Postgres:
//
//	db, err := sqldb.Open("mysql", dsn)
//	if err != nil {
//	    return err
//	}
//	products := store.NewProductSchema(db)
//
// Column names and FROM expressions come from the generated code and are
// written as is; values are always passed as arguments.
package sqldb
