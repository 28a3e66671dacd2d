// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

/*
Package classql compiles a small filter language over class-schedule data
into parameterized SQL. A filter is a single boolean expression over the
schedule's attributes; compiling it yields a SQL fragment that slots into a
WHERE clause.

# Basics

A filter compares fields to literals and combines comparisons with AND, OR
and NOT, loosest binding first. Parentheses group subexpressions:

	day = Monday
	day = Monday AND start_time > 09:00
	(day = Monday OR day = Tuesday) AND NOT instructor = "Thompson"

The queryable fields and the literals they accept are fixed by the schema
package: day takes a day-of-week name, start_time and end_time take HH:MM
times, instructor, course_code and room take quoted strings, credits and
seats take numbers. Time and number fields order with <, <=, > and >=; the
remaining fields admit only = and !=.

# Compiling

[Compile] runs the whole pipeline and returns a [Statement]:

	stmt, err := classql.Compile(`day = Friday AND start_time >= 13:00`)
	...
	fmt.Println(stmt.SQL()) // day = 'Friday' AND start_time >= '13:00'

The generated SQL follows SQLite conventions: literals are single-quoted
with embedded quotes doubled, != lowers to <>, and the driver-bound form
uses @classql_N named parameters. String values can never escape their
quoting, so a filter cannot smuggle SQL into the fragment.

On failure no SQL is produced. Errors carry byte-offset spans into the
filter text, so callers can underline exactly the offending part; see the
expr package for the per-stage error types and for running the stages
(tokenize, parse, context-check, generate) individually.

# Running filters

The database layer is a deliberately thin collaborator. [Open] opens the
SQLite file named by a [Config], and [DB.Select] runs a compiled Statement
against the schedule table with bound parameters:

	db, err := classql.Open(cfg)
	...
	classes, err := db.Select(ctx, stmt)

Statements are prepared once per database and cached; both [Statement] and
[DB] are safe for concurrent use.
*/
package classql
