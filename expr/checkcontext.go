// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"fmt"
	"strings"

	"github.com/campusops/classql/schema"
)

// CheckedExpr is a filter that has passed context analysis. Only a
// CheckedExpr can be lowered to SQL, which makes the stage ordering explicit
// in the types: code generation cannot be handed an unvalidated tree.
type CheckedExpr struct {
	root Expr
}

// Root returns the root node of the validated tree.
func (ce *CheckedExpr) Root() Expr {
	return ce.root
}

// CheckContext walks the tree depth-first and checks every comparison
// against the schema: the field must exist, the literal must be of the kind
// the field accepts, and the operator must be permitted for the field.
//
// Unlike parsing, analysis does not stop at the first problem: all
// contextually invalid comparisons are collected in left-to-right order and
// reported together in a single ContextError.
func (pe *ParsedExpr) CheckContext() (*CheckedExpr, error) {
	violations := checkExpr(pe.root, nil)
	if len(violations) > 0 {
		return nil, &ContextError{Violations: violations}
	}
	return &CheckedExpr{root: pe.root}, nil
}

// checkExpr appends the violations found in e to vs and returns the result.
func checkExpr(e Expr, vs []Violation) []Violation {
	switch e := e.(type) {
	case *LogicalExpr:
		// Both sides are checked regardless of the other's outcome so that
		// independent subtrees all surface their violations.
		vs = checkExpr(e.Left, vs)
		vs = checkExpr(e.Right, vs)
	case *NotExpr:
		vs = checkExpr(e.Inner, vs)
	case *GroupExpr:
		vs = checkExpr(e.Inner, vs)
	case *ComparisonExpr:
		vs = checkComparison(e, vs)
	}
	return vs
}

// checkComparison checks one comparison against the schema.
func checkComparison(e *ComparisonExpr, vs []Violation) []Violation {
	field, ok := schema.Lookup(e.Field.Name)
	if !ok {
		return append(vs, Violation{
			Field:  e.Field.Name,
			Reason: fmt.Sprintf("unknown field %q, expected one of %s", e.Field.Name, strings.Join(schema.Names(), ", ")),
			Span:   e.Field.Span(),
		})
	}

	if kind := literalKind(e.Value); kind != field.Kind {
		return append(vs, Violation{
			Field:  field.Name,
			Reason: fmt.Sprintf("field %q expects %s, not %s", field.Name, kindNoun(field.Kind), kindNoun(kind)),
			Span:   e.Value.Span(),
		})
	}

	if e.Op.ordered() && !field.Ordered {
		vs = append(vs, Violation{
			Field:  field.Name,
			Reason: fmt.Sprintf("operator %q not allowed for %s field %q, only = and != apply", e.Op, field.Kind, field.Name),
			Span:   e.Span(),
		})
	}

	if t, ok := e.Value.(TimeValue); ok && !t.Valid() {
		vs = append(vs, Violation{
			Field:  field.Name,
			Reason: fmt.Sprintf("%q is not a valid time of day", t.Raw),
			Span:   t.Span(),
		})
	}
	return vs
}

// literalKind maps a literal to the schema kind it satisfies.
func literalKind(lit Literal) schema.Kind {
	switch lit.(type) {
	case StringValue:
		return schema.Text
	case NumberValue:
		return schema.Number
	case DayValue:
		return schema.Day
	case TimeValue:
		return schema.Time
	}
	return 0
}

// kindNoun phrases a schema kind for use in violation messages.
func kindNoun(k schema.Kind) string {
	switch k {
	case schema.Text:
		return "a quoted string"
	case schema.Number:
		return "a number"
	case schema.Day:
		return "a day name"
	case schema.Time:
		return "a time of day"
	}
	return "an unknown value"
}
