// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package pointer implements JSON Pointer (RFC 6901) syntax, and conversion
// from a subset of JSONPath to JSON Pointer.
//
// A pointer is either empty, denoting the whole document, or a sequence of
// reference tokens each introduced by "/". Within a token, "~1" stands for
// "/" and "~0" stands for "~":
//
//	/store/book/0/title
//	/a~1b          (the key "a/b")
//	/m~0n          (the key "m~n")
package pointer

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPointer is reported for text that is not a valid pointer, or
	// a reference token that cannot be used where it appears.
	ErrInvalidPointer = errors.New("invalid JSON pointer")

	// ErrPastEnd is reported by Index for the token "-", which refers to the
	// (nonexistent) element after the last element of an array.
	ErrPastEnd = errors.New("array index past the end")

	// ErrUnsupportedPath is reported by FromPath for a JSONPath expression
	// that may select more than one value.
	ErrUnsupportedPath = errors.New("unsupported JSONPath expression")
)

// Split separates the first reference token of p from the rest of p. The
// token is returned without unescaping; rest is empty or begins with "/".
// Split reports ErrInvalidPointer if p is empty or does not begin with "/".
func Split(p string) (token, rest string, err error) {
	if p == "" || p[0] != '/' {
		return "", p, ErrInvalidPointer
	}
	p = p[1:]
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i], p[i:], nil
	}
	return p, "", nil
}

// Unescape decodes the escapes in the reference token tok. It reports
// ErrInvalidPointer for a "~" not followed by "0" or "1".
func Unescape(tok string) (string, error) {
	i := strings.IndexByte(tok, '~')
	if i < 0 {
		return tok, nil
	}
	var buf strings.Builder
	buf.Grow(len(tok))
	for i >= 0 {
		buf.WriteString(tok[:i])
		if i+1 >= len(tok) {
			return "", ErrInvalidPointer
		}
		switch tok[i+1] {
		case '0':
			buf.WriteByte('~')
		case '1':
			buf.WriteByte('/')
		default:
			return "", ErrInvalidPointer
		}
		tok = tok[i+2:]
		i = strings.IndexByte(tok, '~')
	}
	buf.WriteString(tok)
	return buf.String(), nil
}

var escaper = strings.NewReplacer("~", "~0", "/", "~1")

// Escape encodes s as a reference token.
func Escape(s string) string { return escaper.Replace(s) }

// Index decodes the reference token tok as an array index. An index must be
// "0" or a decimal number without leading zeroes. The token "-" reports
// ErrPastEnd; any other malformed token reports ErrInvalidPointer.
func Index(tok string) (int, error) {
	if tok == "-" {
		return 0, ErrPastEnd
	} else if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, ErrInvalidPointer
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, ErrInvalidPointer
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, ErrInvalidPointer
	}
	return n, nil
}

// A Pointer is a parsed JSON Pointer: its unescaped reference tokens, in
// order. The empty Pointer denotes the whole document.
type Pointer []string

// Parse parses s as a JSON Pointer.
func Parse(s string) (Pointer, error) {
	var out Pointer
	for s != "" {
		tok, rest, err := Split(s)
		if err != nil {
			return nil, err
		}
		key, err := Unescape(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, key)
		s = rest
	}
	return out, nil
}

// String encodes p in pointer syntax.
func (p Pointer) String() string {
	var buf strings.Builder
	for _, tok := range p {
		buf.WriteByte('/')
		buf.WriteString(Escape(tok))
	}
	return buf.String()
}
