// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// LogicalOp is a binary logical operator.
type LogicalOp int

const (
	OpAnd LogicalOp = iota + 1
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpAnd {
		return "AND"
	}
	return "OR"
}

// CompareOp is a comparison operator relating a field to a literal.
type CompareOp int

const (
	OpEqual CompareOp = iota + 1
	OpNotEqual
	OpLess
	OpLessOrEqual
	OpGreater
	OpGreaterOrEqual
)

func (op CompareOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	}
	return "unknown"
}

// ordered reports whether the operator imposes an ordering rather than an
// equality.
func (op CompareOp) ordered() bool {
	switch op {
	case OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		return true
	}
	return false
}

// An Expr is a node of the filter syntax tree. Each node owns its children
// exclusively; trees never share nodes or contain cycles. The String method
// returns a debug representation used as a test oracle.
type Expr interface {
	String() string

	// Span covers the node and all of its descendants.
	Span() Span

	// expr is a marker method.
	expr()
}

// FieldRef names a domain attribute on the left side of a comparison. The
// name is canonicalized to lower case by the lexer; whether it exists is the
// analyzer's concern.
type FieldRef struct {
	Name string
	span Span
}

func (f FieldRef) Span() Span {
	return f.span
}

func (f FieldRef) String() string {
	return f.Name
}

// A Literal is the value on the right side of a comparison. It is one of
// StringValue, NumberValue, DayValue or TimeValue.
type Literal interface {
	String() string

	// Span covers the literal as written, including any quotes.
	Span() Span

	// literal is a marker method.
	literal()
}

// StringValue is a quoted text literal with quotes and escapes resolved.
type StringValue struct {
	V    string
	span Span
}

func (v StringValue) Span() Span { return v.span }
func (v StringValue) String() string { return "String(" + v.V + ")" }
func (v StringValue) literal() {}

// NumberValue is an integer or decimal literal.
type NumberValue struct {
	// Raw is the literal as written.
	Raw string
	// V is the parsed value.
	V    float64
	span Span
}

func (v NumberValue) Span() Span { return v.span }
func (v NumberValue) String() string { return "Number(" + v.Raw + ")" }
func (v NumberValue) literal() {}

// DayValue is a day-of-week literal. Name holds the canonical
// capitalization regardless of how the day was written.
type DayValue struct {
	Name string
	span Span
}

func (v DayValue) Span() Span { return v.span }
func (v DayValue) String() string { return "Day(" + v.Name + ")" }
func (v DayValue) literal() {}

// TimeValue is a time-of-day literal written as HH:MM.
type TimeValue struct {
	// Raw is the literal as written.
	Raw string
	// Hour and Minute are the parsed components. They are read straight
	// from the digits and may be out of range; Valid reports whether the
	// literal is a real time of day.
	Hour   int
	Minute int
	span   Span
}

func (v TimeValue) Span() Span { return v.span }
func (v TimeValue) String() string { return "Time(" + v.Raw + ")" }
func (v TimeValue) literal() {}

// Valid reports whether the literal is a well-formed time of day: one or two
// hour digits up to 23 and exactly two minute digits up to 59.
func (v TimeValue) Valid() bool {
	_, minutes, ok := strings.Cut(v.Raw, ":")
	if !ok || len(minutes) != 2 {
		return false
	}
	return v.Hour <= 23 && v.Minute <= 59
}

// Canonical returns the zero-padded HH:MM form of the time.
func (v TimeValue) Canonical() string {
	return fmt.Sprintf("%02d:%02d", v.Hour, v.Minute)
}

// ComparisonExpr relates one field to one literal value.
type ComparisonExpr struct {
	Field FieldRef
	Op    CompareOp
	Value Literal
	span  Span
}

func (e *ComparisonExpr) Span() Span { return e.span }
func (e *ComparisonExpr) expr()      {}

func (e *ComparisonExpr) String() string {
	return "Compare[" + e.Field.Name + " " + e.Op.String() + " " + e.Value.String() + "]"
}

// LogicalExpr combines two expressions with AND or OR. Chained applications
// of the same operator lean left.
type LogicalExpr struct {
	Op    LogicalOp
	Left  Expr
	Right Expr
	span  Span
}

func (e *LogicalExpr) Span() Span { return e.span }
func (e *LogicalExpr) expr()      {}

func (e *LogicalExpr) String() string {
	if e.Op == OpAnd {
		return "And[" + e.Left.String() + " " + e.Right.String() + "]"
	}
	return "Or[" + e.Left.String() + " " + e.Right.String() + "]"
}

// NotExpr negates its inner expression.
type NotExpr struct {
	Inner Expr
	span  Span
}

func (e *NotExpr) Span() Span { return e.span }
func (e *NotExpr) expr()      {}

func (e *NotExpr) String() string {
	return "Not[" + e.Inner.String() + "]"
}

// GroupExpr is an explicitly parenthesized expression. It is kept in the
// tree so the generator can preserve user-intended grouping even when the
// parentheses are redundant.
type GroupExpr struct {
	Inner Expr
	span  Span
}

func (e *GroupExpr) Span() Span { return e.span }
func (e *GroupExpr) expr()      {}

func (e *GroupExpr) String() string {
	return "Group[" + e.Inner.String() + "]"
}

// number parses the digits of a numeric lexeme. The lexer only emits digit
// runs so the conversion cannot fail.
func number(lexeme string) float64 {
	v, _ := strconv.ParseFloat(lexeme, 64)
	return v
}
