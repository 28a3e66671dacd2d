// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package schema describes the domain attributes that can appear in a
// classql filter. Each attribute has a fixed value kind which determines the
// literals and comparison operators it accepts, and the database column the
// code generator lowers it to.
package schema

import "sort"

// Kind is the kind of value a field holds.
type Kind int

const (
	// Text fields compare against quoted string literals.
	Text Kind = iota + 1
	// Number fields compare against integer or decimal literals.
	Number
	// Day fields compare against day-of-week names.
	Day
	// Time fields compare against HH:MM time-of-day literals.
	Time
)

// String returns the name of the kind as it appears in diagnostics.
func (k Kind) String() string {
	switch k {
	case Text:
		return "string"
	case Number:
		return "number"
	case Day:
		return "day"
	case Time:
		return "time"
	}
	return "unknown"
}

// Field is a single queryable attribute of a class.
type Field struct {
	// Name is the attribute name as written in filters.
	Name string
	// Column is the database column the field lowers to.
	Column string
	// Kind is the kind of literal the field accepts.
	Kind Kind
	// Ordered reports whether the ordering operators <, <=, > and >= are
	// permitted for the field. Equality and inequality are always permitted.
	Ordered bool
}

// fields is the fixed table of queryable class attributes.
var fields = map[string]Field{
	"day":         {Name: "day", Column: "day", Kind: Day},
	"start_time":  {Name: "start_time", Column: "start_time", Kind: Time, Ordered: true},
	"end_time":    {Name: "end_time", Column: "end_time", Kind: Time, Ordered: true},
	"instructor":  {Name: "instructor", Column: "instructor", Kind: Text},
	"course_code": {Name: "course_code", Column: "course_code", Kind: Text},
	"room":        {Name: "room", Column: "room", Kind: Text},
	"credits":     {Name: "credits", Column: "credits", Kind: Number, Ordered: true},
	"seats":       {Name: "seats", Column: "seats", Kind: Number, Ordered: true},
}

// Lookup returns the field with the given name. Field names are
// case-sensitive and always lower case.
func Lookup(name string) (Field, bool) {
	f, ok := fields[name]
	return f, ok
}

// Names returns the names of all queryable fields in alphabetical order. It
// is used to suggest valid fields in error messages.
func Names() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
