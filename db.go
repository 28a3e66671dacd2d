// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package classql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Class is one row of the schedule table.
type Class struct {
	ID         int64
	CourseCode string
	Day        string
	StartTime  string
	EndTime    string
	Instructor string
	Room       string
	Credits    float64
	Seats      int64
}

// selectColumns lists the schedule table columns in the order Select scans
// them into a Class.
const selectColumns = "id, course_code, day, start_time, end_time, instructor, room, credits, seats"

// DB is the thin database collaborator of the compiler. It executes compiled
// Statements against a schedule table; the compiler itself never touches it.
type DB struct {
	// cacheID is used to look up the cached driver prepared statements
	// prepared on this database.
	cacheID int64
	// sqldb is the underlying database/sql DB object.
	sqldb *sql.DB
	// table is the schedule table queried by Select.
	table string
}

// NewDB creates a [DB] from a sql.DB reading the default "classes" table.
func NewDB(sqldb *sql.DB) *DB {
	if sqldb == nil {
		return nil
	}
	return stmtCache.newDB(sqldb, defaultTable)
}

// Open opens the SQLite database file named by the configuration.
func Open(cfg *Config) (*DB, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	sqldb, err := sql.Open("sqlite3", cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	db := stmtCache.newDB(sqldb, cfg.Database.Table)
	return db, nil
}

// PlainDB returns the underlying database object.
func (db *DB) PlainDB() *sql.DB {
	return db.sqldb
}

// selectSQL composes the full query run for a Statement on this database.
func (db *DB) selectSQL(s *Statement) string {
	return "SELECT " + selectColumns + " FROM " + db.table + " WHERE " + s.bound.SQL()
}

// Select runs the compiled filter and returns the matching classes. The
// generated fragment is executed with driver-bound parameters; the prepared
// statement is cached per Statement and DB pair.
func (db *DB) Select(ctx context.Context, s *Statement) (classes []Class, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if err != nil {
			err = fmt.Errorf("cannot select classes: %s", err)
		}
	}()

	sqlstmt, ok := stmtCache.lookupStmt(db, s)
	if !ok {
		sqlstmt, err = stmtCache.driverPrepareStmt(ctx, db, s, db.selectSQL(s))
		if err != nil {
			return nil, err
		}
	}

	rows, err := sqlstmt.QueryContext(ctx, s.bound.Params()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c Class
		err := rows.Scan(&c.ID, &c.CourseCode, &c.Day, &c.StartTime, &c.EndTime, &c.Instructor, &c.Room, &c.Credits, &c.Seats)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
