// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"fmt"

	"github.com/tailscale/hujson"
)

// A Parser builds Documents from JSON input. A Parser keeps its buffers
// between documents, so parsing many inputs with one Parser avoids most
// allocation once the buffers are large enough.
//
// A Parser has at most one live Document: each call to Iterate invalidates
// the Document returned by the previous call, and every handle derived from
// it. A Parser is not safe for concurrent use; use one Parser per goroutine.
type Parser struct {
	doc      Document
	maxDepth int
	jwcc     bool
	jbuf     []byte // standardized copy of the input, in JWCC mode
}

// NewParser constructs a new Parser with default settings.
func NewParser() *Parser { return &Parser{maxDepth: DefaultMaxDepth} }

// SetMaxDepth sets the maximum nesting depth of containers that p will
// accept. If n <= 0, DefaultMaxDepth is used.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// AllowJWCC sets whether p accepts JWCC input, the JSON with Commas and
// Comments extension. When enabled, comments and trailing commas are removed
// from a copy of the input before it is parsed; the caller's input is never
// modified. Offsets reported for a document parsed this way refer to the
// standardized copy, which has the same length and layout as the input.
func (p *Parser) AllowJWCC(ok bool) { p.jwcc = ok }

// Iterate prepares data for on-demand traversal and returns a Document
// positioned at its root. Iterate checks that data is a single well-formed
// JSON value with balanced containers, but defers checking the contents of
// strings, numbers, and literals until they are accessed. In case of error,
// the concrete type is *SyntaxError.
//
// The Document and every handle derived from it borrow data, which must not
// be modified until they are no longer in use.
func (p *Parser) Iterate(data []byte) (*Document, error) {
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	if p.jwcc {
		p.jbuf = append(p.jbuf[:0], data...)
		std, err := hujson.Standardize(p.jbuf)
		if err != nil {
			return nil, &SyntaxError{
				Offset:  jwccOffset(data, err),
				Code:    TapeError,
				Message: fmt.Sprintf("invalid JWCC: %v", err),
			}
		}
		data = std
	}

	c := &p.doc.c
	toks, err := buildIndex(data, c.toks[:0], p.maxDepth)
	*c = cursor{
		buf:  data,
		toks: toks,
		open: c.open[:0],
		done: c.done[:0],
		str:  c.str[:0],
		key:  c.key[:0],
	}
	if err != nil {
		c.buf, c.toks = nil, nil
		return nil, err
	}
	return &p.doc, nil
}

// jwccOffset recovers the offset in data of a JWCC parse error from the line
// and column reported by hujson. It returns 0 if err does not carry them.
func jwccOffset(data []byte, err error) int {
	var line, col int
	if _, serr := fmt.Sscanf(err.Error(), "hujson: line %d, column %d:", &line, &col); serr != nil {
		return 0
	}
	return offsetOf(data, line, col-1)
}

// Iterate is shorthand for NewParser().Iterate(data).
func Iterate(data []byte) (*Document, error) { return NewParser().Iterate(data) }

// A Document is a JSON input prepared for on-demand traversal. Its root
// value is visited through the Value returned by Root, and the cursor shared
// by all handles moves forward through the document as they are used.
type Document struct {
	c cursor
}

// Root returns the root value of d. The handle is valid only while the cursor
// has not moved past the root's first token; call Rewind to start over.
func (d *Document) Root() Value { return Value{c: &d.c} }

// Rewind moves the cursor back to the start of d. All handles previously
// derived from d become stale, and the document's string buffer is reused,
// so byte slices returned by GetStringBytes or GetWobblyString for strings
// with escapes are no longer valid.
func (d *Document) Rewind() { d.c.reset() }

// AtPointer rewinds d and returns the value identified by the JSON Pointer
// (RFC 6901) p, relative to the root.
func (d *Document) AtPointer(p string) Value {
	d.Rewind()
	return d.Root().AtPointer(p)
}

// AtPath rewinds d and returns the value identified by the JSONPath
// expression p. Only the subset of JSONPath that names a single value is
// supported: the root "$" followed by ".name", "['name']", and "[n]" steps.
func (d *Document) AtPath(p string) Value {
	d.Rewind()
	return d.Root().AtPath(p)
}

// Depth reports the number of containers enclosing the cursor.
func (d *Document) Depth() int { return d.c.depth }

// CurrentLocation reports the byte offset of the next unconsumed token, or
// the length of the input when every token has been consumed.
func (d *Document) CurrentLocation() int { return d.c.location() }

// AtEnd reports whether every token of d has been consumed.
func (d *Document) AtEnd() bool { return d.c.atEnd() }

// Location reports the line and column positions of span in the input of d.
func (d *Document) Location(span Span) Location { return locate(d.c.buf, span) }

// Input returns the input text of d. The caller must not modify it.
func (d *Document) Input() []byte { return d.c.buf }
