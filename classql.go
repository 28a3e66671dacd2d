// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package classql

import (
	"github.com/campusops/classql/expr"
)

// stmtCache stores the driver prepared statements associated to the classql
// Statement objects.
var stmtCache = newStatementCache()

// Statement is a compiled filter ready to be run on a database. A Statement
// can be used with any [DB] and is safe for concurrent use.
type Statement struct {
	// cacheID is used to look up the driver prepared statements associated
	// with this Statement.
	cacheID int64
	// checked is the validated filter tree.
	checked *expr.CheckedExpr
	// fragment is the generated boolean expression with literals inlined.
	fragment string
	// bound is the generated boolean expression over named parameters,
	// used when the Statement is run on a database.
	bound *expr.BoundQuery
}

// Compile runs the filter text through the full pipeline: tokenize, parse,
// context-check and generate. On success the returned Statement carries the
// generated SQL; on failure the error identifies the failing stage and the
// offending spans of the input.
//
// For stage-level access (raw tokens, the syntax tree, the checked tree) use
// the expr package directly; Compile is the all-in-one path.
func Compile(filter string) (*Statement, error) {
	tokens, err := expr.Tokenize(filter)
	if err != nil {
		return nil, err
	}
	parsed, err := expr.Parse(tokens)
	if err != nil {
		return nil, err
	}
	checked, err := parsed.CheckContext()
	if err != nil {
		return nil, err
	}
	fragment, err := checked.SQL()
	if err != nil {
		return nil, err
	}
	bound, err := checked.BindParams()
	if err != nil {
		return nil, err
	}
	return stmtCache.newStatement(checked, fragment, bound), nil
}

// MustCompile is the same as [Compile] except that it panics on error.
func MustCompile(filter string) *Statement {
	s, err := Compile(filter)
	if err != nil {
		panic(err)
	}
	return s
}

// SQL returns the filter as a SQL boolean expression with literal values
// inlined, suitable for substitution into a WHERE clause.
func (s *Statement) SQL() string {
	return s.fragment
}

// Checked returns the validated filter tree.
func (s *Statement) Checked() *expr.CheckedExpr {
	return s.checked
}
