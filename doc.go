// Package simpledb provides a thin convenience layer over database/sql.
//
// go-simple-db offers a Laravel-inspired, map-based API for common CRUD
// operations with built-in protection against SQL injection attacks.
//
// # Quick Start
//
// Connect to a database and start working with maps:
//
//	db, err := simpledb.Connect("mysql", "user:pass@tcp(localhost:3306)/dbname")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// # CRUD Operations
//
// Every operation takes a table name and plain maps:
//
//	// Insert
//	ok, err := db.Insert("users", map[string]any{
//	    "name":  "John",
//	    "email": "john@example.com",
//	})
//
//	// Find one (nil row means not found, not an error)
//	row, err := db.Find("users", map[string]any{"email": "john@example.com"})
//
//	// Find many
//	rows, err := db.FindAll("users", map[string]any{"status": "active"})
//
//	// Update
//	ok, err := db.Update("users", map[string]any{"status": "inactive"}, map[string]any{"id": 1})
//
//	// Delete
//	ok, err := db.Delete("users", map[string]any{"status": "banned"})
//
//	// Count
//	n, err := db.Count("users", map[string]any{"status": "active"})
//
// # Fluent Queries
//
// Column selection and pagination chain onto a per-call finder:
//
//	rows, err := db.Select("id", "name").
//	    Limit(10).
//	    Offset(20).
//	    FetchWithOffset("users", map[string]any{"status": "active"})
//
// The source may also be a raw statement:
//
//	rows, err := db.FetchWithOffset(simpledb.NewRaw(
//	    "SELECT name FROM users WHERE age > ?", 18,
//	), nil)
//
// # Raw SQL
//
// Statements the map API cannot express run through Execute:
//
//	res, err := db.Execute("UPDATE users SET visits = visits + 1 WHERE id = ?", 7)
//
// # Security
//
// go-simple-db protects against SQL injection through:
//   - Prepared statements for all values
//   - Identifier validation (table/column names)
//
// # Thread Safety
//
// DB is safe for concurrent use. Fluent chains hold their state in a
// per-call Finder value, so concurrent chains on the same DB do not
// interfere with each other.
//
// # Supported Databases
//
//   - MySQL / MariaDB
//   - PostgreSQL
//   - SQLite
package simpledb
