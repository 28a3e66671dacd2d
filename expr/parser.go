// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"strconv"
	"strings"
)

// maxParseDepth bounds grouping and negation nesting so that pathological
// inputs cannot exhaust the goroutine stack through recursive descent.
const maxParseDepth = 200

// NewParser returns a parser ready to build a syntax tree from tokens.
func NewParser() *Parser {
	return &Parser{}
}

// Parser builds a filter syntax tree from a token sequence. A Parser may be
// reused; each call to Parse resets all cursor state.
//
// The grammar, loosest binding first:
//
//	expr       = or_expr
//	or_expr    = and_expr { "OR" and_expr }
//	and_expr   = unary { "AND" unary }
//	unary      = "NOT" unary | comparison
//	comparison = field comp_op literal | "(" expr ")"
type Parser struct {
	tokens []Token
	pos    int
	depth  int
}

// Parse consumes the token sequence produced by the lexer and returns the
// parsed filter. A successful parse consumes every token up to the EOF
// token; leftover tokens fail with a TrailingInputError. Parsing stops at
// the first error.
func Parse(tokens []Token) (*ParsedExpr, error) {
	return NewParser().Parse(tokens)
}

// Parse parses the given tokens. Any state left over from a previous call is
// discarded.
func (p *Parser) Parse(tokens []Token) (*ParsedExpr, error) {
	p.init(tokens)

	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Kind != EOF {
		return nil, &TrailingInputError{Found: t, Remaining: p.remaining()}
	}
	return &ParsedExpr{root: root}, nil
}

// init resets the state of the parser and sets the token sequence.
func (p *Parser) init(tokens []Token) {
	p.tokens = tokens
	p.pos = 0
	p.depth = 0
}

// peek returns the current token without consuming it. Past the end of the
// sequence it keeps returning the final EOF token.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return Token{Kind: EOF}
		}
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

// remaining returns the unconsumed tail of the token sequence.
func (p *Parser) remaining() []Token {
	return p.tokens[p.pos:]
}

// unexpected builds the error for a token that does not fit the grammar at
// the current position.
func (p *Parser) unexpected(expected string) error {
	t := p.peek()
	if t.Kind == EOF {
		return &UnexpectedEndError{Expected: expected, Pos: t.Start}
	}
	return &SyntaxError{Expected: expected, Found: t, Remaining: p.remaining()}
}

// parseOr parses a chain of OR operands. Chains lean left.
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == Or {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{
			Op:    OpOr,
			Left:  left,
			Right: right,
			span:  Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
	return left, nil
}

// parseAnd parses a chain of AND operands. Chains lean left.
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == And {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{
			Op:    OpAnd,
			Left:  left,
			Right: right,
			span:  Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
	return left, nil
}

// parseUnary parses any number of NOT prefixes followed by a comparison or
// group.
func (p *Parser) parseUnary() (Expr, error) {
	if p.peek().Kind != Not {
		return p.parseComparison()
	}
	not := p.advance()
	if p.depth++; p.depth > maxParseDepth {
		return nil, &DepthError{Pos: not.Start}
	}
	defer func() { p.depth-- }()

	inner, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &NotExpr{
		Inner: inner,
		span:  Span{Start: not.Start, End: inner.Span().End},
	}, nil
}

// parseComparison parses a "field op literal" comparison or a parenthesized
// group.
func (p *Parser) parseComparison() (Expr, error) {
	switch t := p.peek(); t.Kind {
	case LeftParen:
		return p.parseGroup()
	case Field:
		field := p.advance()
		op, err := p.parseCompareOp()
		if err != nil {
			return nil, err
		}
		value, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &ComparisonExpr{
			Field: FieldRef{Name: field.Lexeme, span: field.Span()},
			Op:    op,
			Value: value,
			span:  Span{Start: field.Start, End: value.Span().End},
		}, nil
	default:
		return nil, p.unexpected("a field name or '('")
	}
}

// parseGroup parses a parenthesized expression, keeping the explicit group
// in the tree.
func (p *Parser) parseGroup() (Expr, error) {
	open := p.advance()
	if p.depth++; p.depth > maxParseDepth {
		return nil, &DepthError{Pos: open.Start}
	}
	defer func() { p.depth-- }()

	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != RightParen {
		return nil, p.unexpected("')'")
	}
	closing := p.advance()
	return &GroupExpr{
		Inner: inner,
		span:  Span{Start: open.Start, End: closing.End},
	}, nil
}

// parseCompareOp parses one of the six comparison operators.
func (p *Parser) parseCompareOp() (CompareOp, error) {
	var op CompareOp
	switch p.peek().Kind {
	case Equal:
		op = OpEqual
	case NotEqual:
		op = OpNotEqual
	case Less:
		op = OpLess
	case LessOrEqual:
		op = OpLessOrEqual
	case Greater:
		op = OpGreater
	case GreaterOrEqual:
		op = OpGreaterOrEqual
	default:
		return 0, p.unexpected("a comparison operator")
	}
	p.advance()
	return op, nil
}

// parseLiteral parses the value on the right side of a comparison.
func (p *Parser) parseLiteral() (Literal, error) {
	switch t := p.peek(); t.Kind {
	case StringLiteral:
		p.advance()
		return StringValue{V: t.Lexeme, span: t.Span()}, nil
	case NumberLiteral:
		p.advance()
		return NumberValue{Raw: t.Lexeme, V: number(t.Lexeme), span: t.Span()}, nil
	case DayLiteral:
		p.advance()
		day, _ := canonicalDay(t.Lexeme)
		return DayValue{Name: day, span: t.Span()}, nil
	case TimeLiteral:
		p.advance()
		hours, minutes, _ := strings.Cut(t.Lexeme, ":")
		h, _ := strconv.Atoi(hours)
		m, _ := strconv.Atoi(minutes)
		return TimeValue{Raw: t.Lexeme, Hour: h, Minute: m, span: t.Span()}, nil
	default:
		return nil, p.unexpected("a literal value")
	}
}

// ParsedExpr is the syntax tree of a filter. It contains only information
// written in the filter text; context checks against the schema happen in
// CheckContext.
type ParsedExpr struct {
	root Expr
}

// Root returns the root node of the tree.
func (pe *ParsedExpr) Root() Expr {
	return pe.root
}

// String returns a textual representation of the tree for debugging and
// testing purposes.
func (pe *ParsedExpr) String() string {
	return pe.root.String()
}
