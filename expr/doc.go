// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

/*
Package expr implements the classql filter compiler as four independent,
pure stages:

  - Tokenize turns filter text into a token sequence ending in EOF.
  - Parse turns tokens into a syntax tree (ParsedExpr).
  - ParsedExpr.CheckContext validates every comparison against the schema
    and returns the CheckedExpr marker on success.
  - CheckedExpr.SQL and CheckedExpr.BindParams lower the validated tree to a
    SQL boolean expression, with literals inlined safely or bound as named
    parameters.

Each stage either fully succeeds or fails with a structured error carrying
byte-offset spans into the original text; no stage returns partial output.
The stages hold no state between calls, so a single Lexer or Parser value can
be reused and independent filters can be compiled concurrently.
*/
package expr
