// Package database declares the runtime contract used by generated schema
// code. It holds pure data types (Row, Query, Fields) and the Database
// interface; executing queries is left to the application's driver.
package database
