package sqldb

// The MySQL and Postgres drivers are registered so that Open works with
// the "mysql" and "postgres" driver names.
import (
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)
