// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package classql

import (
	"context"
	"database/sql"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/campusops/classql/expr"
)

// stmtIDCount and dbIDCount are global variables used to generate unique
// IDs.
var stmtIDCount int64
var dbIDCount int64

type dbID = int64
type stmtID = int64

// statementCache caches the sql.Stmt objects associated with each
// classql.Statement. A Statement can correspond to multiple sql.Stmt values
// prepared on different databases. The cache is indexed by the Statement ID
// and the DB ID.
//
// The cache closes sql.Stmt objects with a finalizer on the Statement.
// Similarly a finalizer is set on DB objects to close all statements
// prepared on the DB, close the DB, and remove references to the DB from the
// cache.
//
// The mutex must be locked when accessing either the stmtDBCache or the
// dbStmtCache.
type statementCache struct {
	stmtDBCache map[stmtID]map[dbID]*sql.Stmt
	dbStmtCache map[dbID]map[stmtID]bool
	mutex       sync.RWMutex
}

var once sync.Once
var singleStmtCache *statementCache

// newStatementCache returns the single instance of the statement cache.
func newStatementCache() *statementCache {
	once.Do(func() {
		singleStmtCache = &statementCache{
			stmtDBCache: map[stmtID]map[dbID]*sql.Stmt{},
			dbStmtCache: map[dbID]map[stmtID]bool{},
		}
	})
	return singleStmtCache
}

// newStatement returns a new Statement and allocates it in the cache. A
// finalizer is set on the Statement to remove all sql.Stmt values associated
// with it from the cache and then run Close on them. The finalizer is run
// after the Statement is garbage collected.
func (sc *statementCache) newStatement(checked *expr.CheckedExpr, fragment string, bound *expr.BoundQuery) *Statement {
	cacheID := atomic.AddInt64(&stmtIDCount, 1)
	s := &Statement{cacheID: cacheID, checked: checked, fragment: fragment, bound: bound}
	sc.mutex.Lock()
	sc.stmtDBCache[cacheID] = map[dbID]*sql.Stmt{}
	sc.mutex.Unlock()
	runtime.SetFinalizer(s, sc.getStmtFinalizer())
	return s
}

// newDB returns a new DB and allocates it in the cache. A finalizer is set
// on the DB which removes it from the cache, closes all sql.Stmt values
// prepared upon it and then closes the underlying database.
func (sc *statementCache) newDB(sqldb *sql.DB, table string) *DB {
	cacheID := atomic.AddInt64(&dbIDCount, 1)
	sc.mutex.Lock()
	sc.dbStmtCache[cacheID] = map[stmtID]bool{}
	sc.mutex.Unlock()
	db := &DB{sqldb: sqldb, cacheID: cacheID, table: table}
	runtime.SetFinalizer(db, sc.getDBFinalizer())
	return db
}

// lookupStmt checks the cache for a sql.Stmt prepared for this Statement on
// this DB.
func (sc *statementCache) lookupStmt(db *DB, s *Statement) (*sql.Stmt, bool) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	// The statement ID is only removed from the cache when the finalizer is
	// run, so it is always in stmtDBCache.
	sqlstmt, ok := sc.stmtDBCache[s.cacheID][db.cacheID]
	return sqlstmt, ok
}

// driverPrepareStmt prepares the query on the DB and stores the prepared
// statement in the cache.
func (sc *statementCache) driverPrepareStmt(ctx context.Context, db *DB, s *Statement, query string) (*sql.Stmt, error) {
	sqlstmt, err := db.sqldb.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	// Check if a statement has been inserted by someone else since we last
	// checked.
	if sqlstmtAlt, ok := sc.stmtDBCache[s.cacheID][db.cacheID]; ok {
		sqlstmt.Close()
		return sqlstmtAlt, nil
	}
	sc.stmtDBCache[s.cacheID][db.cacheID] = sqlstmt
	sc.dbStmtCache[db.cacheID][s.cacheID] = true
	return sqlstmt, nil
}

// getStmtFinalizer returns a finalizer that removes a Statement from the
// caches and closes its prepared statements.
func (sc *statementCache) getStmtFinalizer() func(*Statement) {
	return func(s *Statement) {
		sc.mutex.Lock()
		defer sc.mutex.Unlock()
		dbCache := sc.stmtDBCache[s.cacheID]
		for dbCacheID, sqlstmt := range dbCache {
			sqlstmt.Close()
			delete(sc.dbStmtCache[dbCacheID], s.cacheID)
		}
		delete(sc.stmtDBCache, s.cacheID)
	}
}

// getDBFinalizer returns a finalizer that closes and removes from the cache
// all sql.Stmt values prepared on the database, removes the database from
// the cache, then closes the sql.DB.
func (sc *statementCache) getDBFinalizer() func(*DB) {
	return func(db *DB) {
		sc.mutex.Lock()
		defer sc.mutex.Unlock()
		for statementCacheID := range sc.dbStmtCache[db.cacheID] {
			dbCache := sc.stmtDBCache[statementCacheID]
			dbCache[db.cacheID].Close()
			delete(dbCache, db.cacheID)
		}
		delete(sc.dbStmtCache, db.cacheID)
		db.sqldb.Close()
	}
}
