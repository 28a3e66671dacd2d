// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/campusops/classql/schema"
)

// The generator lowers a checked filter to a SQL boolean expression usable
// inside a WHERE clause. SQLite conventions are used throughout: literals
// are single-quoted with embedded quotes doubled, != lowers to <>, and the
// bound form uses @classql_N named parameters.
//
// Generation is a pure fold over the tree: two calls on the same tree yield
// byte-identical SQL.

// SQL returns the filter as a SQL boolean expression with literal values
// inlined. String, day and time values are single-quoted; any single quote
// inside a string value is doubled so the literal cannot escape its quoting.
func (ce *CheckedExpr) SQL() (string, error) {
	g := &generator{}
	if err := g.writeExpr(ce.root); err != nil {
		return "", err
	}
	return g.buf.String(), nil
}

// BindParams returns the filter as a SQL boolean expression over named
// parameters, together with the parameter values to pass to the driver.
func (ce *CheckedExpr) BindParams() (*BoundQuery, error) {
	g := &generator{bind: true}
	if err := g.writeExpr(ce.root); err != nil {
		return nil, err
	}
	return &BoundQuery{sql: g.buf.String(), params: g.params}, nil
}

// BoundQuery is a generated SQL fragment with its parameter values.
type BoundQuery struct {
	sql    string
	params []any
}

// SQL returns the generated SQL fragment.
func (bq *BoundQuery) SQL() string {
	return bq.sql
}

// Params returns the named parameter values for the fragment, in the order
// the parameters appear in the SQL.
func (bq *BoundQuery) Params() []any {
	return bq.params
}

// generator folds a checked tree into SQL text.
type generator struct {
	buf strings.Builder
	// bind selects named parameters over inlined literals.
	bind   bool
	params []any
}

func (g *generator) writeExpr(e Expr) error {
	switch e := e.(type) {
	case *LogicalExpr:
		if err := g.writeOperand(e.Left, e.Op); err != nil {
			return err
		}
		g.buf.WriteString(" " + e.Op.String() + " ")
		return g.writeOperand(e.Right, e.Op)
	case *NotExpr:
		g.buf.WriteString("NOT (")
		if err := g.writeExpr(e.Inner); err != nil {
			return err
		}
		g.buf.WriteString(")")
		return nil
	case *GroupExpr:
		// Explicit groups always keep their parentheses, even when
		// redundant, to preserve the grouping as written.
		g.buf.WriteString("(")
		if err := g.writeExpr(e.Inner); err != nil {
			return err
		}
		g.buf.WriteString(")")
		return nil
	case *ComparisonExpr:
		return g.writeComparison(e)
	default:
		return fmt.Errorf("internal error: unknown expression type %T", e)
	}
}

// writeOperand writes a logical operand, parenthesizing it when it is itself
// a logical expression with a different operator. The parentheses encode the
// filter's precedence directly instead of relying on SQL's own rules.
func (g *generator) writeOperand(e Expr, parent LogicalOp) error {
	if l, ok := e.(*LogicalExpr); ok && l.Op != parent {
		g.buf.WriteString("(")
		if err := g.writeExpr(e); err != nil {
			return err
		}
		g.buf.WriteString(")")
		return nil
	}
	return g.writeExpr(e)
}

func (g *generator) writeComparison(e *ComparisonExpr) error {
	field, ok := schema.Lookup(e.Field.Name)
	if !ok {
		return fmt.Errorf("internal error: unchecked field %q reached generation", e.Field.Name)
	}
	g.buf.WriteString(field.Column)
	g.buf.WriteString(" " + sqlCompareOp(e.Op) + " ")
	return g.writeLiteral(e.Value)
}

func (g *generator) writeLiteral(lit Literal) error {
	var value any
	switch v := lit.(type) {
	case StringValue:
		value = v.V
	case NumberValue:
		value = v.V
	case DayValue:
		value = v.Name
	case TimeValue:
		value = v.Canonical()
	default:
		return fmt.Errorf("internal error: unknown literal type %T", lit)
	}

	if g.bind {
		name := "classql_" + strconv.Itoa(len(g.params))
		g.buf.WriteString("@" + name)
		g.params = append(g.params, sql.Named(name, value))
		return nil
	}

	switch v := lit.(type) {
	case NumberValue:
		g.buf.WriteString(v.Raw)
	default:
		g.buf.WriteString(quoteString(value.(string)))
	}
	return nil
}

// quoteString single-quotes a value for inlining, doubling any embedded
// single quote so the value cannot terminate the literal early.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// sqlCompareOp maps a comparison operator to its SQL spelling.
func sqlCompareOp(op CompareOp) string {
	if op == OpNotEqual {
		return "<>"
	}
	return op.String()
}
