// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"fmt"
	"io"
	"strings"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Numeric              // number (not yet checked against the grammar)
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Numeric: "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner finds the lexical tokens of a JSON document held in memory.
// Each call to Next advances the scanner to the next token, or reports an
// error.
//
// The scanner only locates tokens. The interior of a scalar token is not
// checked: a number token is the maximal run of bytes up to the next
// delimiter, and a string token runs to the next unescaped quotation mark.
// The decoders on Value check the contents when they are accessed.
type Scanner struct {
	data     []byte
	tok      Token
	pos, end int // start and end offsets of current token
	err      error
}

// NewScanner constructs a new lexical scanner that consumes data.
func NewScanner(data []byte) *Scanner { return &Scanner{data: data} }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid

	// Discard whitespace.
	i := s.end
	for i < len(s.data) && isSpace(s.data[i]) {
		i++
	}
	s.pos, s.end = i, i
	if i == len(s.data) {
		return s.setErr(io.EOF)
	}

	ch := s.data[i]

	// Handle punctuation.
	if t, ok := selfDelim(ch); ok {
		s.end++
		s.tok = t
		return nil
	}

	switch {
	case ch == '"':
		return s.scanString()
	case isNumStart(ch):
		s.tok = Numeric
	case ch == 't':
		s.tok = True
	case ch == 'f':
		s.tok = False
	case ch == 'n':
		s.tok = Null
	default:
		s.end++
		return s.failf(TapeError, "unexpected %q", ch)
	}
	s.scanAtom()
	return nil
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The return value
// aliases the input and must not be modified.
func (s *Scanner) Text() []byte { return s.data[s.pos:s.end] }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// scanString consumes a quoted string. Escapes are skipped but not checked.
func (s *Scanner) scanString() error {
	var esc bool
	for i := s.pos + 1; i < len(s.data); i++ {
		ch := s.data[i]
		if esc {
			esc = false
		} else if ch == '\\' {
			esc = true
		} else if ch == '"' {
			s.end = i + 1
			s.tok = String
			return nil
		}
	}
	s.end = len(s.data)
	return s.failf(UnclosedString, "missing closing quotation mark")
}

// scanAtom consumes a number or literal up to the next delimiter.
func (s *Scanner) scanAtom() {
	i := s.pos
	for i < len(s.data) && !isDelim(s.data[i]) {
		i++
	}
	s.end = i
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) failf(code ErrorCode, msg string, args ...any) error {
	return s.setErr(&SyntaxError{
		Offset:  s.pos,
		Code:    code,
		Message: fmt.Sprintf(msg, args...),
	})
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }

// isDelim reports whether ch ends an unquoted token.
func isDelim(ch byte) bool {
	switch ch {
	case ' ', '\r', '\n', '\t', '{', '}', '[', ']', ',', ':', '"':
		return true
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
