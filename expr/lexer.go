// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NewLexer returns a lexer ready to tokenize a filter.
func NewLexer() *Lexer {
	return &Lexer{}
}

// Lexer converts filter text into tokens. A Lexer may be reused; each call
// to Tokenize resets all cursor state.
type Lexer struct {
	input string
	pos   int
	// nextPos is the start of the next char.
	nextPos int
	// char is the rune starting at pos. char is set to 0 when pos reaches
	// the end of input.
	char   rune
	tokens []Token
}

// Tokenize scans the filter text left to right and returns its tokens. The
// returned sequence always ends with exactly one EOF token. Whitespace is
// skipped, never emitted. On the first unrecognizable character or
// unterminated string literal, Tokenize fails without producing tokens.
func Tokenize(input string) ([]Token, error) {
	return NewLexer().Tokenize(input)
}

// Tokenize scans the given input. Any state left over from a previous call
// is discarded.
func (l *Lexer) Tokenize(input string) ([]Token, error) {
	l.init(input)

	for l.pos < len(l.input) {
		l.skipBlanks()
		if l.pos >= len(l.input) {
			break
		}

		switch {
		case isInitialNameChar(l.char):
			l.scanWord()
		case unicode.IsDigit(l.char):
			l.scanNumber()
		case l.char == '\'' || l.char == '"':
			if err := l.scanString(); err != nil {
				return nil, err
			}
		default:
			if err := l.scanSymbol(); err != nil {
				return nil, err
			}
		}
	}

	l.tokens = append(l.tokens, Token{Kind: EOF, Start: l.pos, End: l.pos})
	return l.tokens, nil
}

// init resets the state of the lexer and sets the input string.
func (l *Lexer) init(input string) {
	l.input = input
	l.pos = 0
	l.nextPos = 0
	l.char = 0
	l.tokens = []Token{}
	l.advanceChar()
}

// advanceChar moves the lexer to the next character in the input.
func (l *Lexer) advanceChar() bool {
	if l.nextPos >= len(l.input) {
		l.char = 0
		l.pos = l.nextPos
		return false
	}
	var size int
	l.char, size = utf8.DecodeRuneInString(l.input[l.nextPos:])
	l.pos = l.nextPos
	l.nextPos += size
	return true
}

// skipBlanks advances the lexer past spaces, tabs and newlines.
func (l *Lexer) skipBlanks() {
	for l.pos < len(l.input) {
		switch l.char {
		case ' ', '\t', '\r', '\n':
			l.advanceChar()
		default:
			return
		}
	}
}

// add appends a token spanning [start, l.pos).
func (l *Lexer) add(kind TokenKind, lexeme string, start int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: lexeme, Start: start, End: l.pos})
}

// keywords maps the lower-cased logical keywords to their token kinds.
var keywords = map[string]TokenKind{
	"and": And,
	"or":  Or,
	"not": Not,
}

// dayNames maps lower-cased day-of-week names to their canonical form.
var dayNames = map[string]string{
	"monday":    "Monday",
	"tuesday":   "Tuesday",
	"wednesday": "Wednesday",
	"thursday":  "Thursday",
	"friday":    "Friday",
	"saturday":  "Saturday",
	"sunday":    "Sunday",
}

// canonicalDay returns the canonical capitalization of a day-of-week name.
func canonicalDay(word string) (string, bool) {
	day, ok := dayNames[strings.ToLower(word)]
	return day, ok
}

// scanWord reads a run of name characters and classifies it as a logical
// keyword, a day name or a field name. Matching is case-insensitive; field
// lexemes are canonicalized to lower case, day lexemes keep the text as
// written.
func (l *Lexer) scanWord() {
	mark := l.pos
	for l.pos < len(l.input) && isNameChar(l.char) {
		l.advanceChar()
	}
	word := l.input[mark:l.pos]
	lower := strings.ToLower(word)

	if kind, ok := keywords[lower]; ok {
		l.add(kind, word, mark)
		return
	}
	if _, ok := dayNames[lower]; ok {
		l.add(DayLiteral, word, mark)
		return
	}
	l.add(Field, lower, mark)
}

// scanNumber reads an integer or decimal literal, or a HH:MM time literal if
// the digits are followed by a colon and further digits.
func (l *Lexer) scanNumber() {
	mark := l.pos
	for l.pos < len(l.input) && unicode.IsDigit(l.char) {
		l.advanceChar()
	}

	// A colon followed by a digit makes this a time of day, not a number.
	if l.char == ':' && unicode.IsDigit(l.peekChar()) {
		l.advanceChar()
		for l.pos < len(l.input) && unicode.IsDigit(l.char) {
			l.advanceChar()
		}
		l.add(TimeLiteral, l.input[mark:l.pos], mark)
		return
	}

	if l.char == '.' && unicode.IsDigit(l.peekChar()) {
		l.advanceChar()
		for l.pos < len(l.input) && unicode.IsDigit(l.char) {
			l.advanceChar()
		}
	}
	l.add(NumberLiteral, l.input[mark:l.pos], mark)
}

// scanString reads a quoted string literal delimited by single or double
// quotes. A doubled delimiter inside the literal is an escaped quote. The
// stored lexeme is the unquoted contents with escapes resolved.
func (l *Lexer) scanString() error {
	mark := l.pos
	delim := l.char
	l.advanceChar()

	var contents strings.Builder
	for l.pos < len(l.input) {
		if l.char == delim {
			l.advanceChar()
			// A doubled delimiter is an escaped quote, not a closer.
			if l.char == delim && l.pos < len(l.input) {
				contents.WriteRune(delim)
				l.advanceChar()
				continue
			}
			l.add(StringLiteral, contents.String(), mark)
			return nil
		}
		contents.WriteRune(l.char)
		l.advanceChar()
	}
	return &UnterminatedStringError{Pos: mark}
}

// scanSymbol reads a punctuation or comparison operator token.
func (l *Lexer) scanSymbol() error {
	mark := l.pos
	char := l.char
	l.advanceChar()

	switch char {
	case '(':
		l.add(LeftParen, "(", mark)
	case ')':
		l.add(RightParen, ")", mark)
	case '=':
		l.add(Equal, "=", mark)
	case '!':
		if l.char == '=' {
			l.advanceChar()
			l.add(NotEqual, "!=", mark)
			return nil
		}
		return &UnknownRuneError{Rune: char, Pos: mark}
	case '<':
		if l.char == '=' {
			l.advanceChar()
			l.add(LessOrEqual, "<=", mark)
			return nil
		}
		l.add(Less, "<", mark)
	case '>':
		if l.char == '=' {
			l.advanceChar()
			l.add(GreaterOrEqual, ">=", mark)
			return nil
		}
		l.add(Greater, ">", mark)
	default:
		return &UnknownRuneError{Rune: char, Pos: mark}
	}
	return nil
}

// peekChar returns the rune after the current one without advancing.
func (l *Lexer) peekChar() rune {
	if l.nextPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.nextPos:])
	return r
}

// isNameChar returns true if the given char can be part of a name.
func isNameChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

// isInitialNameChar returns true if the given char can appear at the start
// of a name.
func isInitialNameChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
