// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go4.org/mem"
)

// DefaultMaxDepth is the default limit on the nesting depth of containers
// accepted by a Parser.
const DefaultMaxDepth = 1024

// An indexer builds the structural index of a document: the span of every
// token, in input order. While doing so it checks that the tokens form a
// single well-formed JSON value, so that the cursor built on the index never
// has to recover from unbalanced containers or misplaced punctuation.
type indexer struct {
	s        *Scanner
	spans    []Span
	depth    int
	maxDepth int
}

// buildIndex appends the token spans of data to spans and returns the
// updated slice. In case of error, the concrete type is *SyntaxError.
func buildIndex(data []byte, spans []Span, maxDepth int) (_ []Span, err error) {
	if !mem.ValidUTF8(mem.B(data)) {
		return spans, &SyntaxError{Code: UTF8Error, Message: "input is not valid UTF-8"}
	}
	x := &indexer{s: NewScanner(data), spans: spans, maxDepth: maxDepth}
	defer x.recoverSyntaxError(&err)

	if err := x.s.Next(); err == io.EOF {
		x.syntaxError(Empty, "no value in input")
	} else if err != nil {
		panic(err)
	}
	x.parseElement()
	if err := x.s.Next(); err == nil {
		x.syntaxError(TrailingContent, "unexpected %v after value", x.s.Token())
	} else if err != io.EOF {
		panic(err)
	}
	return x.spans, nil
}

func (x *indexer) recoverSyntaxError(errp *error) {
	if serr := recover(); serr != nil {
		if err, ok := serr.(*SyntaxError); ok {
			*errp = err
			return
		}
		panic(serr)
	}
}

// push records the current token in the index.
func (x *indexer) push() { x.spans = append(x.spans, x.s.Span()) }

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (x *indexer) parseElement() {
	x.push()
	switch tok := x.s.Token(); tok {
	case LBrace:
		x.enter()
		x.parseMembers()
		x.depth--
	case LSquare:
		x.enter()
		x.parseElements()
		x.depth--
	case Numeric, String, True, False, Null:
		// OK, contents are checked on access
	default:
		x.syntaxError(TapeError, "unexpected %v", tok)
	}
}

func (x *indexer) enter() {
	x.depth++
	if x.depth > x.maxDepth {
		x.syntaxError(DepthError, "nesting depth exceeds %d", x.maxDepth)
	}
}

// parseMembers consumes zero or more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace, and it has been indexed.
func (x *indexer) parseMembers() {
	if tok := x.advance(RBrace, String); tok == RBrace {
		x.push()
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		x.push()
		x.advance(Colon)
		x.push()
		x.advance()
		x.parseElement()

		// Check whether we have more members (",") or are done ("}").
		tok := x.advance(RBrace, Comma)
		x.push()
		if tok == RBrace {
			return // end of object
		}
		x.advance(String) // advance to next key
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare, and it has been indexed.
func (x *indexer) parseElements() {
	if tok := x.advance(); tok == RSquare {
		x.push()
		return // end of array
	}
	x.parseElement()
	for {
		tok := x.advance(RSquare, Comma)
		x.push()
		if tok == RSquare {
			return // end of array
		}
		x.advance()
		x.parseElement()
	}
}

// advance reads the next token, which must be one of tokens if any are given.
func (x *indexer) advance(tokens ...Token) Token {
	if err := x.s.Next(); err == io.EOF {
		x.syntaxError(TapeError, "%s", tokLabel(tokens, "end of input"))
	} else if err != nil {
		panic(err)
	}
	tok := x.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		x.syntaxError(TapeError, "%s", tokLabel(tokens, tok))
	}
	return tok
}

func (x *indexer) syntaxError(code ErrorCode, msg string, args ...any) {
	panic(&SyntaxError{
		Offset:  x.s.Span().Pos,
		Code:    code,
		Message: fmt.Sprintf(msg, args...),
	})
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("expected more input, got %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
