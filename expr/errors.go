// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"fmt"
	"strings"
)

// Each stage of the pipeline fails with its own error type so that callers
// can react to the failing stage programmatically. Every error carries byte
// offsets into the original filter text; the column reported in messages is
// the 1-based offset of the first offending byte.

// UnknownRuneError is returned by the lexer when it meets a character that
// cannot start any token.
type UnknownRuneError struct {
	// Rune is the offending character.
	Rune rune
	// Pos is the byte offset of the character in the input.
	Pos int
}

func (e *UnknownRuneError) Error() string {
	return fmt.Sprintf("cannot tokenize filter: column %d: unrecognized character %q", e.Pos+1, e.Rune)
}

// UnterminatedStringError is returned by the lexer when a string literal is
// missing its closing quote.
type UnterminatedStringError struct {
	// Pos is the byte offset of the opening quote.
	Pos int
}

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("cannot tokenize filter: column %d: missing closing quote in string literal", e.Pos+1)
}

// SyntaxError is returned by the parser when a token of one kind was
// required but another was found.
type SyntaxError struct {
	// Expected describes the token or construct the parser was looking for.
	Expected string
	// Found is the token actually present.
	Found Token
	// Remaining holds the unconsumed tokens starting at Found, for callers
	// that continue diagnosis after a failed parse.
	Remaining []Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("cannot parse filter: column %d: expected %s, found %s", e.Found.Start+1, e.Expected, e.Found)
}

// UnexpectedEndError is returned by the parser when the input stops where a
// token was required, for example after a trailing comparison operator.
type UnexpectedEndError struct {
	// Expected describes the token or construct the parser was looking for.
	Expected string
	// Pos is the byte offset at which input ran out.
	Pos int
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("cannot parse filter: column %d: expected %s, found end of input", e.Pos+1, e.Expected)
}

// TrailingInputError is returned when a complete expression was parsed but
// tokens other than EOF remain.
type TrailingInputError struct {
	// Found is the first leftover token.
	Found Token
	// Remaining holds all leftover tokens starting at Found.
	Remaining []Token
}

func (e *TrailingInputError) Error() string {
	return fmt.Sprintf("cannot parse filter: column %d: unexpected %s after complete expression", e.Found.Start+1, e.Found)
}

// DepthError is returned when the filter nests groups or negations beyond
// the parser's depth bound.
type DepthError struct {
	// Pos is the byte offset at which the bound was exceeded.
	Pos int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("cannot parse filter: column %d: expression exceeds maximum nesting depth %d", e.Pos+1, maxParseDepth)
}

// Violation records a single contextually invalid comparison found by the
// analyzer.
type Violation struct {
	// Field is the attribute name written in the comparison.
	Field string
	// Reason describes why the comparison is invalid.
	Reason string
	// Span delimits the offending part of the input.
	Span Span
}

func (v Violation) String() string {
	return fmt.Sprintf("column %d: %s", v.Span.Start+1, v.Reason)
}

// ContextError is returned by the analyzer. It carries every contextually
// invalid comparison in the filter, in left-to-right discovery order, not
// just the first.
type ContextError struct {
	Violations []Violation
}

func (e *ContextError) Error() string {
	reasons := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		reasons[i] = v.String()
	}
	return "invalid filter context: " + strings.Join(reasons, "; ")
}

// Spans returns the spans of all violations in discovery order.
func (e *ContextError) Spans() []Span {
	spans := make([]Span, len(e.Violations))
	for i, v := range e.Violations {
		spans[i] = v.Span
	}
	return spans
}
