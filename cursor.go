// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

// A cursor is the shared forward-scanning position in the token stream of a
// single document. Every Value, Array, and Object derived from a document
// borrows the same cursor.
//
// The cursor moves forward only, except that it may be reset to the start of
// a container that is currently open, which never crosses a sibling that has
// already been consumed.
type cursor struct {
	buf  []byte
	toks []Span // structural index: the span of each token in buf

	pos   int // index in toks of the next unconsumed token
	depth int // number of containers entered and not yet left

	// open[k] is the token index of the container whose contents are at
	// depth k+1; len(open) == depth always.
	open []int

	// done[k] is the token index of the most recent container at depth k that
	// was closed. Together with open, this distinguishes a container that was
	// exhausted from one that was abandoned.
	done []int

	// closedAt is the token index just past the most recent closing token
	// consumed by leave.
	closedAt int

	str []byte // decoded strings; appended to until the cursor is reset
	key []byte // scratch for decoding escaped object keys
}

// reset positions c at the start of its document.
func (c *cursor) reset() {
	c.pos = 0
	c.depth = 0
	c.open = c.open[:0]
	c.done = c.done[:0]
	c.closedAt = 0
	c.str = c.str[:0]
}

// text returns the text of token i, or nil if i is out of range.
func (c *cursor) text(i int) []byte {
	if i < 0 || i >= len(c.toks) {
		return nil
	}
	t := c.toks[i]
	return c.buf[t.Pos:t.End]
}

// first returns the first byte of token i, or 0 if i is out of range.
func (c *cursor) first(i int) byte {
	if i < 0 || i >= len(c.toks) {
		return 0
	}
	return c.buf[c.toks[i].Pos]
}

// peek returns the first byte of the next unconsumed token, or 0 at the end
// of the document.
func (c *cursor) peek() byte { return c.first(c.pos) }

// atEnd reports whether every token has been consumed.
func (c *cursor) atEnd() bool { return c.pos >= len(c.toks) }

// location reports the byte offset of the next unconsumed token, or the
// length of the input at the end of the document.
func (c *cursor) location() int {
	if c.atEnd() {
		return len(c.buf)
	}
	return c.toks[c.pos].Pos
}

// enter consumes the opening token of a container at the current position.
// The caller must have checked the token.
func (c *cursor) enter() {
	c.open = append(c.open, c.pos)
	c.depth++
	c.pos++
}

// leave consumes the closing token of the innermost open container.
func (c *cursor) leave() {
	c.depth--
	start := c.open[c.depth]
	c.open = c.open[:c.depth]
	for len(c.done) <= c.depth {
		c.done = append(c.done, -1)
	}
	c.done[c.depth] = start
	c.pos++
	c.closedAt = c.pos
}

// isOpen reports whether the container at depth with its opening token at
// start is currently open, meaning the cursor is somewhere inside it.
func (c *cursor) isOpen(depth, start int) bool {
	return depth < len(c.open) && c.open[depth] == start
}

// isClosed reports whether the container at depth with its opening token at
// start was exhausted and has not since been superseded.
func (c *cursor) isClosed(depth, start int) bool {
	return !c.isOpen(depth, start) && depth < len(c.done) && c.done[depth] == start
}

// justLeft reports whether the container at depth with its opening token at
// start is closed and nothing has been consumed since its closing token.
func (c *cursor) justLeft(depth, start int) bool {
	return c.depth == depth && c.pos == c.closedAt && c.isClosed(depth, start)
}

// scanState is the progress of a scan over one container, as seen from the
// handle that refers to it.
type scanState byte

const (
	stateUnopened scanState = iota // cursor is on the opening token
	stateAtStart                   // entered, cursor on the first child
	stateMidScan                   // entered, cursor past the first child
	stateClosed                    // exhausted
	stateStale                     // abandoned, or never reached
)

// containerState reports the state of the container at depth whose opening
// token is at start. Handles are values, so the state is derived from the
// cursor rather than stored.
func (c *cursor) containerState(depth, start int) scanState {
	switch {
	case c.pos == start && c.depth == depth:
		return stateUnopened
	case c.isOpen(depth, start):
		if c.pos == start+1 {
			return stateAtStart
		}
		return stateMidScan
	case c.isClosed(depth, start):
		return stateClosed
	}
	return stateStale
}

// isCloser reports whether b begins a token that ends a container.
func isCloser(b byte) bool { return b == ']' || b == '}' }

// isOpener reports whether b begins a token that starts a container.
func isOpener(b byte) bool { return b == '[' || b == '{' }

// skipValue consumes one complete value at the current position, including
// the entire contents of a container. This costs time proportional to the
// size of the skipped value.
func (c *cursor) skipValue() error {
	b := c.peek()
	switch {
	case b == 0, isCloser(b), b == ',', b == ':':
		return TapeError
	case !isOpener(b):
		c.pos++
		return nil
	}
	n := 0
	for ; c.pos < len(c.toks); c.pos++ {
		if b := c.peek(); isOpener(b) {
			n++
		} else if isCloser(b) {
			n--
			if n == 0 {
				c.pos++
				return nil
			}
		}
	}
	return TapeError
}

// skipTo consumes tokens until the cursor is back at the given depth,
// abandoning every container opened deeper than that. Nested containers
// encountered along the way are skipped whole.
func (c *cursor) skipTo(depth int) error {
	n := 0
	for c.depth > depth {
		if c.atEnd() {
			return TapeError
		}
		if b := c.peek(); isOpener(b) {
			n++
		} else if isCloser(b) {
			if n == 0 {
				c.abandon()
				continue
			}
			n--
		}
		c.pos++
	}
	return nil
}

// abandon consumes the closing token of the innermost open container without
// recording it as exhausted, so that handles to it become stale.
func (c *cursor) abandon() {
	c.depth--
	c.open = c.open[:c.depth]
	c.pos++
}

// finishChild moves the cursor past the current child of the container whose
// contents are at depth, whether that child was untouched, partly consumed,
// or fully consumed. Afterward the cursor is at a "," or a closing token.
func (c *cursor) finishChild(depth int) error {
	if c.depth < depth {
		return OutOfOrderIteration
	}
	if err := c.skipTo(depth); err != nil {
		return err
	}
	if b := c.peek(); b != ',' && !isCloser(b) {
		return c.skipValue()
	}
	return nil
}

// rewindTo positions the cursor back at the opening token of the container
// at depth whose opening token is at start, as if it had never been entered.
// The container must be open or have been closed without the cursor moving
// beyond it.
func (c *cursor) rewindTo(depth, start int) {
	c.pos = start
	c.depth = depth
	c.open = c.open[:depth]
	if len(c.done) > depth+1 {
		c.done = c.done[:depth+1]
	}
}

// rewindInto positions the cursor at the first child of the container at
// depth whose opening token is at start, leaving the container open.
func (c *cursor) rewindInto(depth, start int) {
	c.rewindTo(depth, start)
	c.enter()
}
