// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

import "iter"

// An Array is a handle to a JSON array that has been entered. Its elements
// are visited in order by an ArrayIterator, and each element must be used (or
// abandoned) before the next is visited.
type Array struct {
	c     *cursor
	start int // index of the opening bracket
	depth int // depth of the array itself; its elements are one deeper
}

func (a Array) check() error {
	if a.c == nil {
		return Uninitialized
	}
	return nil
}

func (a Array) state() scanState { return a.c.containerState(a.depth, a.start) }

// IsEmpty reports whether a has no elements. It does not move the cursor.
func (a Array) IsEmpty() bool { return a.c != nil && a.c.first(a.start+1) == ']' }

// Iter returns an iterator over the elements of a, starting at the cursor.
func (a Array) Iter() *ArrayIterator { return &ArrayIterator{a: a, index: -1} }

// All returns a sequence of the elements of a. If iteration fails, the last
// value yielded carries the error.
func (a Array) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		it := a.Iter()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(failed(err))
		}
	}
}

// At returns the element of a at index i. The cursor must be at the first
// element: At scans forward from there, skipping i elements.
func (a Array) At(i int) Value {
	if err := a.check(); err != nil {
		return failed(err)
	}
	switch a.state() {
	case stateAtStart:
	case stateClosed:
		if a.IsEmpty() {
			return failed(IndexOutOfBounds)
		}
		return failed(OutOfOrderIteration)
	default:
		return failed(OutOfOrderIteration)
	}
	if i < 0 {
		return failed(IndexOutOfBounds)
	}
	it := a.Iter()
	for it.Next() {
		if it.Index() == i {
			return it.Value()
		}
	}
	if err := it.Err(); err != nil {
		return failed(err)
	}
	return failed(IndexOutOfBounds)
}

// CountElements reports the number of elements in a. The cursor must be at
// the first element; it is returned there after counting.
func (a Array) CountElements() (int, error) {
	if err := a.check(); err != nil {
		return 0, err
	}
	switch a.state() {
	case stateAtStart:
	case stateClosed:
		if a.IsEmpty() {
			return 0, nil
		}
		return 0, OutOfOrderIteration
	default:
		return 0, OutOfOrderIteration
	}
	var n int
	it := a.Iter()
	for it.Next() {
		n++
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	a.c.rewindInto(a.depth, a.start)
	return n, nil
}

// RawJSON returns the complete source text of a. The cursor must be at the
// first element; afterward the array is consumed.
func (a Array) RawJSON() ([]byte, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	switch a.state() {
	case stateAtStart:
	case stateClosed:
		if a.IsEmpty() {
			return a.c.buf[a.c.toks[a.start].Pos:a.c.toks[a.start+1].End], nil
		}
		return nil, OutOfOrderIteration
	default:
		return nil, OutOfOrderIteration
	}
	a.c.rewindTo(a.depth, a.start)
	return Value{c: a.c, start: a.start, depth: a.depth}.RawJSON()
}

// An ArrayIterator visits the elements of an array in order.
//
//	it := arr.Iter()
//	for it.Next() {
//	   v := it.Value()
//	   // ... use v
//	}
//	if err := it.Err(); err != nil {
//	   log.Fatalf("Iteration failed: %v", err)
//	}
//
// Moving to the next element skips whatever part of the current element was
// not used.
type ArrayIterator struct {
	a       Array
	cur     Value
	index   int
	started bool
	done    bool
	err     error
}

// Next advances it to the next element and reports whether one exists.
func (it *ArrayIterator) Next() bool {
	if it.done {
		return false
	} else if err := it.a.check(); err != nil {
		return it.fail(err)
	}
	c := it.a.c
	switch it.a.state() {
	case stateClosed:
		it.done = true
		return false
	case stateUnopened, stateStale:
		return it.fail(OutOfOrderIteration)
	case stateAtStart:
		if !it.started {
			break // the first element is under the cursor
		}
		fallthrough
	case stateMidScan:
		if err := c.finishChild(it.a.depth + 1); err != nil {
			return it.fail(err)
		}
		switch c.peek() {
		case ']':
			c.leave()
			it.done = true
			return false
		case ',':
			c.pos++
		default:
			return it.fail(TapeError)
		}
	}
	it.started = true
	it.index++
	it.cur = Value{c: c, start: c.pos, depth: it.a.depth + 1}
	return true
}

func (it *ArrayIterator) fail(err error) bool {
	it.err = err
	it.done = true
	it.cur = failed(err)
	return false
}

// Value returns the current element of it. Before the first call to Next,
// or after Next reports false, it returns an invalid Value.
func (it *ArrayIterator) Value() Value { return it.cur }

// Index returns the offset of the current element among those visited by
// it, starting from 0.
func (it *ArrayIterator) Index() int { return it.index }

// Err reports the error, if any, that ended the iteration.
func (it *ArrayIterator) Err() error { return it.err }
