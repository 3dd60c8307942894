// Package driver implements database/sql/driver interfaces so that Zinc
// grid files can be queried with SQL through an in-memory SQLite database.
package driver
