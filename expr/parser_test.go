// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr_test

import (
	"strings"

	"github.com/campusops/classql/expr"
	. "gopkg.in/check.v1"
)

type ParserSuite struct{}

var _ = Suite(&ParserSuite{})

func mustTokenize(c *C, input string) []expr.Token {
	tokens, err := expr.Tokenize(input)
	c.Assert(err, IsNil, Commentf("input: %s", input))
	return tokens
}

var parseTests = []struct {
	summary  string
	input    string
	expected string
}{{
	"single comparison",
	"seats >= 10",
	"Compare[seats >= Number(10)]",
}, {
	"or chain leans left",
	"day = Monday OR day = Tuesday OR day = Friday",
	"Or[Or[Compare[day = Day(Monday)] Compare[day = Day(Tuesday)]] Compare[day = Day(Friday)]]",
}, {
	"and chain leans left",
	"seats > 1 AND seats < 9 AND credits = 3",
	"And[And[Compare[seats > Number(1)] Compare[seats < Number(9)]] Compare[credits = Number(3)]]",
}, {
	"and binds tighter than or on both sides",
	"day = Monday AND seats > 5 OR day = Friday AND seats < 3",
	"Or[And[Compare[day = Day(Monday)] Compare[seats > Number(5)]] And[Compare[day = Day(Friday)] Compare[seats < Number(3)]]]",
}, {
	"not binds tighter than and",
	"NOT day = Monday AND seats > 5",
	"And[Not[Compare[day = Day(Monday)]] Compare[seats > Number(5)]]",
}, {
	"double negation",
	"NOT NOT day = Monday",
	"Not[Not[Compare[day = Day(Monday)]]]",
}, {
	"not over a group",
	"NOT (day = Monday OR day = Tuesday)",
	"Not[Group[Or[Compare[day = Day(Monday)] Compare[day = Day(Tuesday)]]]]",
}, {
	"redundant group is kept",
	"(seats >= 10)",
	"Group[Compare[seats >= Number(10)]]",
}, {
	"nested groups are all kept",
	"((seats >= 10))",
	"Group[Group[Compare[seats >= Number(10)]]]",
}, {
	"group overrides precedence",
	"day = Monday AND (day = Tuesday OR seats > 5)",
	"And[Compare[day = Day(Monday)] Group[Or[Compare[day = Day(Tuesday)] Compare[seats > Number(5)]]]]",
}, {
	"every operator parses",
	"a = 1 OR a != 1 OR a < 1 OR a <= 1 OR a > 1 OR a >= 1",
	"Or[Or[Or[Or[Or[Compare[a = Number(1)] Compare[a != Number(1)]] Compare[a < Number(1)]] Compare[a <= Number(1)]] Compare[a > Number(1)]] Compare[a >= Number(1)]]",
}}

func (s *ParserSuite) TestParse(c *C) {
	for i, t := range parseTests {
		parsed, err := expr.Parse(mustTokenize(c, t.input))
		if !c.Check(err, IsNil, Commentf("test %d failed:\nsummary: %s\ninput: %s", i, t.summary, t.input)) {
			continue
		}
		c.Check(parsed.String(), Equals, t.expected,
			Commentf("test %d failed:\nsummary: %s\ninput: %s", i, t.summary, t.input))
	}
}

var parseErrorTests = []struct {
	summary  string
	input    string
	expected string
}{{
	"empty input",
	"",
	"cannot parse filter: column 1: expected a field name or '(', found end of input",
}, {
	"missing literal",
	"day = ",
	"cannot parse filter: column 7: expected a literal value, found end of input",
}, {
	"missing operator",
	"day Monday",
	`cannot parse filter: column 5: expected a comparison operator, found day("Monday")`,
}, {
	"operator without field",
	"= 5",
	"cannot parse filter: column 1: expected a field name or '(', found =",
}, {
	"literal on the left",
	"5 = seats",
	`cannot parse filter: column 1: expected a field name or '(', found number("5")`,
}, {
	"unclosed group",
	"(day = Monday",
	"cannot parse filter: column 14: expected ')', found end of input",
}, {
	"empty group",
	"()",
	"cannot parse filter: column 2: expected a field name or '(', found )",
}, {
	"dangling and",
	"day = Monday AND",
	"cannot parse filter: column 17: expected a field name or '(', found end of input",
}, {
	"dangling not",
	"NOT",
	"cannot parse filter: column 4: expected a field name or '(', found end of input",
}, {
	"trailing expression",
	"day = Monday day = Tuesday",
	`cannot parse filter: column 14: unexpected field("day") after complete expression`,
}, {
	"trailing close paren",
	"day = Monday)",
	"cannot parse filter: column 13: unexpected ) after complete expression",
}, {
	"field as literal",
	"day = seats",
	`cannot parse filter: column 7: expected a literal value, found field("seats")`,
}}

func (s *ParserSuite) TestParseErrors(c *C) {
	for i, t := range parseErrorTests {
		parsed, err := expr.Parse(mustTokenize(c, t.input))
		c.Check(parsed, IsNil, Commentf("test %d failed:\nsummary: %s\ninput: %s", i, t.summary, t.input))
		if !c.Check(err, NotNil, Commentf("test %d failed:\nsummary: %s\ninput: %s", i, t.summary, t.input)) {
			continue
		}
		c.Check(err.Error(), Equals, t.expected,
			Commentf("test %d failed:\nsummary: %s\ninput: %s", i, t.summary, t.input))
	}
}

func (s *ParserSuite) TestNodeSpans(c *C) {
	input := "NOT (day = Monday OR day = Tuesday) AND seats >= 10"
	parsed, err := expr.Parse(mustTokenize(c, input))
	c.Assert(err, IsNil)

	root, ok := parsed.Root().(*expr.LogicalExpr)
	c.Assert(ok, Equals, true)
	c.Assert(root.Span(), Equals, expr.Span{Start: 0, End: len(input)})

	not, ok := root.Left.(*expr.NotExpr)
	c.Assert(ok, Equals, true)
	c.Assert(not.Span(), Equals, expr.Span{Start: 0, End: 35})

	group, ok := not.Inner.(*expr.GroupExpr)
	c.Assert(ok, Equals, true)
	// The group span includes both parentheses.
	c.Assert(group.Span(), Equals, expr.Span{Start: 4, End: 35})

	cmp, ok := root.Right.(*expr.ComparisonExpr)
	c.Assert(ok, Equals, true)
	c.Assert(cmp.Span(), Equals, expr.Span{Start: 40, End: len(input)})
	c.Assert(cmp.Field.Span(), Equals, expr.Span{Start: 40, End: 45})
	c.Assert(cmp.Value.Span(), Equals, expr.Span{Start: 49, End: len(input)})
}

func (s *ParserSuite) TestSyntaxErrorDetails(c *C) {
	_, err := expr.Parse(mustTokenize(c, "day = Monday day = Tuesday"))
	trailing, ok := err.(*expr.TrailingInputError)
	c.Assert(ok, Equals, true)
	c.Assert(trailing.Found.Kind, Equals, expr.Field)
	c.Assert(trailing.Found.Start, Equals, 13)
	// The leftover tail runs through the EOF token.
	c.Assert(trailing.Remaining, HasLen, 4)

	_, err = expr.Parse(mustTokenize(c, "day Monday"))
	syntax, ok := err.(*expr.SyntaxError)
	c.Assert(ok, Equals, true)
	c.Assert(syntax.Expected, Equals, "a comparison operator")
	c.Assert(syntax.Found.Kind, Equals, expr.DayLiteral)

	_, err = expr.Parse(mustTokenize(c, "day <"))
	unexpected, ok := err.(*expr.UnexpectedEndError)
	c.Assert(ok, Equals, true)
	c.Assert(unexpected.Expected, Equals, "a literal value")
	c.Assert(unexpected.Pos, Equals, 5)
}

func (s *ParserSuite) TestNestingDepth(c *C) {
	deep := func(n int) string {
		return strings.Repeat("(", n) + "seats = 1" + strings.Repeat(")", n)
	}

	parsed, err := expr.Parse(mustTokenize(c, deep(200)))
	c.Assert(err, IsNil)
	c.Assert(strings.Count(parsed.String(), "Group["), Equals, 200)

	_, err = expr.Parse(mustTokenize(c, deep(201)))
	c.Assert(err, ErrorMatches, "cannot parse filter: column 201: expression exceeds maximum nesting depth 200")

	_, err = expr.Parse(mustTokenize(c, strings.Repeat("NOT ", 201)+"seats = 1"))
	c.Assert(err, ErrorMatches, "cannot parse filter: column 801: expression exceeds maximum nesting depth 200")
}

func (s *ParserSuite) TestParserReuse(c *C) {
	p := expr.NewParser()
	first, err := p.Parse(mustTokenize(c, "day = Monday OR seats > 5"))
	c.Assert(err, IsNil)

	_, err = p.Parse(mustTokenize(c, "day ="))
	c.Assert(err, NotNil)

	second, err := p.Parse(mustTokenize(c, "day = Monday OR seats > 5"))
	c.Assert(err, IsNil)
	c.Assert(second.String(), Equals, first.String())
}
