// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/campusops/classql/expr"
)

// renderDiagnostics prints a compilation error with the offending spans of
// the filter underlined.
func renderDiagnostics(w io.Writer, filter string, err error) {
	color.New(color.FgRed, color.Bold).Fprintln(w, err.Error())
	spans := errorSpans(filter, err)
	if len(spans) == 0 || strings.ContainsRune(filter, '\n') {
		return
	}

	fmt.Fprintf(w, "  %s\n", filter)
	marks := []rune(strings.Repeat(" ", len(filter)+1))
	for _, s := range spans {
		if s.Start == s.End {
			// Zero-width span, e.g. input ran out: mark the position.
			marks[s.Start] = '^'
			continue
		}
		for i := s.Start; i < s.End && i < len(marks); i++ {
			marks[i] = '~'
		}
	}
	color.New(color.FgYellow).Fprintf(w, "  %s\n", strings.TrimRight(string(marks), " "))
}

// errorSpans extracts the spans carried by each stage's error type.
func errorSpans(filter string, err error) []expr.Span {
	var unknownRune *expr.UnknownRuneError
	var unterminated *expr.UnterminatedStringError
	var syntax *expr.SyntaxError
	var unexpectedEnd *expr.UnexpectedEndError
	var trailing *expr.TrailingInputError
	var depth *expr.DepthError
	var invalidContext *expr.ContextError

	switch {
	case errors.As(err, &unknownRune):
		return []expr.Span{{Start: unknownRune.Pos, End: unknownRune.Pos + 1}}
	case errors.As(err, &unterminated):
		return []expr.Span{{Start: unterminated.Pos, End: len(filter)}}
	case errors.As(err, &syntax):
		return []expr.Span{syntax.Found.Span()}
	case errors.As(err, &unexpectedEnd):
		return []expr.Span{{Start: unexpectedEnd.Pos, End: unexpectedEnd.Pos}}
	case errors.As(err, &trailing):
		return []expr.Span{trailing.Found.Span()}
	case errors.As(err, &depth):
		return []expr.Span{{Start: depth.Pos, End: depth.Pos + 1}}
	case errors.As(err, &invalidContext):
		return invalidContext.Spans()
	}
	return nil
}
