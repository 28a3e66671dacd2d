// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

// Span is a half-open [Start, End) range of byte offsets into the original
// filter text. Spans are attached to tokens, AST nodes and diagnostics so
// that callers can underline the offending part of the input.
type Span struct {
	Start int
	End   int
}

// TokenKind identifies the lexical category of a token.
type TokenKind int

const (
	// EOF marks the end of the input. The lexer always emits exactly one
	// EOF token after the last real token.
	EOF TokenKind = iota
	// And, Or and Not are the logical keywords.
	And
	Or
	Not
	// Field is an identifier naming a domain attribute. The lexer does not
	// check that the attribute exists; that is the analyzer's job.
	Field
	// StringLiteral is a quoted text value. The lexeme holds the unquoted
	// contents with escape sequences resolved.
	StringLiteral
	// NumberLiteral is an integer or decimal value.
	NumberLiteral
	// TimeLiteral is a time of day written as HH:MM.
	TimeLiteral
	// DayLiteral is a day-of-week name such as Monday.
	DayLiteral
	// LeftParen and RightParen are the grouping punctuation.
	LeftParen
	RightParen
	// Comparison operators.
	Equal
	NotEqual
	Less
	LessOrEqual
	Greater
	GreaterOrEqual
)

// String returns the name of the token kind as used in diagnostics and test
// oracles.
func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case And:
		return "AND"
	case Or:
		return "OR"
	case Not:
		return "NOT"
	case Field:
		return "field"
	case StringLiteral:
		return "string"
	case NumberLiteral:
		return "number"
	case TimeLiteral:
		return "time"
	case DayLiteral:
		return "day"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case Less:
		return "<"
	case LessOrEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	}
	return "unknown"
}

// Token is a single lexical unit of a filter. Tokens are immutable once
// produced by the lexer.
type Token struct {
	Kind TokenKind
	// Lexeme is the token text. For string literals it is the unquoted
	// contents; for keywords and day names it is the text as written.
	Lexeme string
	// Start and End delimit the token in the input, End exclusive. For every
	// token except EOF, End > Start.
	Start int
	End   int
}

// Span returns the token's source span.
func (t Token) Span() Span {
	return Span{Start: t.Start, End: t.End}
}

// String returns a compact representation of the token for debugging and
// test oracles, e.g. `field("day")` or `=`.
func (t Token) String() string {
	switch t.Kind {
	case EOF, LeftParen, RightParen, Equal, NotEqual, Less, LessOrEqual, Greater, GreaterOrEqual:
		return t.Kind.String()
	}
	return t.Kind.String() + `("` + t.Lexeme + `")`
}
