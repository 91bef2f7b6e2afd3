// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"iter"

	"go4.org/mem"

	"github.com/creachadair/ondemand/internal/escape"
)

// An Object is a handle to a JSON object that has been entered. Fields are
// visited in document order, either all of them by a FieldIterator or
// selectively by key with FindField.
type Object struct {
	c     *cursor
	start int // index of the opening brace
	depth int // depth of the object itself; its fields are one deeper
}

func (o Object) check() error {
	if o.c == nil {
		return Uninitialized
	}
	return nil
}

func (o Object) state() scanState { return o.c.containerState(o.depth, o.start) }

// IsEmpty reports whether o has no fields. It does not move the cursor.
func (o Object) IsEmpty() bool { return o.c != nil && o.c.first(o.start+1) == '}' }

// FindField returns the value of the first field of o with the given key,
// searching forward from the cursor. If the cursor is inside the value of an
// earlier field, the rest of that value is skipped. The search stops at the
// end of the object and does not wrap around, so a field that precedes the
// cursor is reported as NoSuchField even if it exists.
//
// Keys are compared after unescaping, so the key "a" matches a field written
// as "\u0061".
func (o Object) FindField(key string) Value {
	if err := o.check(); err != nil {
		return failed(err)
	}
	switch o.state() {
	case stateAtStart:
	case stateMidScan:
		more, err := o.nextField()
		if err != nil {
			return failed(err)
		} else if !more {
			return failed(NoSuchField)
		}
	case stateClosed:
		return failed(NoSuchField)
	default:
		return failed(OutOfOrderIteration)
	}
	for {
		ok, err := o.matchKey(key)
		if err != nil {
			return failed(err)
		} else if ok {
			return Value{c: o.c, start: o.c.pos, depth: o.depth + 1}
		}
		if err := o.c.skipValue(); err != nil {
			return failed(err)
		}
		more, err := o.nextField()
		if err != nil {
			return failed(err)
		} else if !more {
			return failed(NoSuchField)
		}
	}
}

// FindFieldUnordered returns the value of the first field of o with the
// given key, searching forward from the cursor to the end of the object and
// then from the start of the object back to where the search began. Every
// field is examined at most once. When the field is not found, the object
// remains open with the cursor where the search began, or at its first field
// if the search began at the end of the object.
//
// An object that has been scanned to its end is searched again from the
// start, provided nothing after its closing brace has been consumed.
func (o Object) FindFieldUnordered(key string) Value {
	if err := o.check(); err != nil {
		return failed(err)
	}
	switch o.state() {
	case stateAtStart:
		return o.findFromStart(key)
	case stateMidScan:
	case stateClosed:
		if o.IsEmpty() || !o.c.justLeft(o.depth, o.start) {
			return failed(NoSuchField)
		}
		o.c.rewindInto(o.depth, o.start)
		return o.findFromStart(key)
	default:
		return failed(OutOfOrderIteration)
	}
	c := o.c
	if err := c.finishChild(o.depth + 1); err != nil {
		return failed(err)
	}
	mark := c.pos

	// Search from the cursor to the end of the object.
	for c.peek() == ',' {
		c.pos++
		if v, ok, err := o.matchField(key); err != nil {
			return failed(err)
		} else if ok {
			return v
		}
	}
	if c.peek() != '}' {
		return failed(TapeError)
	}

	// Wrap around and search from the first field up to the mark.
	c.pos = o.start + 1
	for {
		if v, ok, err := o.matchField(key); err != nil {
			return failed(err)
		} else if ok {
			return v
		}
		if c.pos == mark {
			return failed(NoSuchField)
		} else if c.peek() != ',' {
			return failed(TapeError)
		}
		c.pos++
	}
}

// findFromStart searches every field of o, which must be open at its first
// field. On a miss the cursor is returned to the first field.
func (o Object) findFromStart(key string) Value {
	v := o.FindField(key)
	if v.err == NoSuchField {
		o.c.rewindInto(o.depth, o.start)
	}
	return v
}

// Field is shorthand for FindFieldUnordered.
func (o Object) Field(key string) Value { return o.FindFieldUnordered(key) }

// matchField consumes the field under the cursor. If its key matches, it
// returns the value and leaves the cursor on it; otherwise the value is
// skipped too.
func (o Object) matchField(key string) (Value, bool, error) {
	ok, err := o.matchKey(key)
	if err != nil {
		return Value{}, false, err
	} else if ok {
		return Value{c: o.c, start: o.c.pos, depth: o.depth + 1}, true, nil
	}
	return Value{}, false, o.c.skipValue()
}

// matchKey consumes the key and colon of the field under the cursor and
// reports whether the key equals want.
func (o Object) matchKey(want string) (bool, error) {
	c := o.c
	text := c.text(c.pos)
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return false, TapeError
	}
	raw := mem.B(text[1 : len(text)-1])
	var ok bool
	if !escape.NeedsDecode(raw) {
		ok = raw.EqualString(want)
	} else {
		key, err := escape.Decode(c.key[:0], raw, escape.Strict)
		c.key = key[:0]
		if err != nil {
			return false, StringError
		}
		ok = mem.B(key).EqualString(want)
	}
	c.pos++
	if c.peek() != ':' {
		return false, TapeError
	}
	c.pos++
	return ok, nil
}

// nextField finishes the current field and moves to the key of the next.
// It reports false at the end of the object, which is then closed.
func (o Object) nextField() (bool, error) {
	c := o.c
	if err := c.finishChild(o.depth + 1); err != nil {
		return false, err
	}
	switch c.peek() {
	case ',':
		c.pos++
		return true, nil
	case '}':
		c.leave()
		return false, nil
	}
	return false, TapeError
}

// Reset moves the cursor back to the first field of o, which must still be
// open. Any handles to values inside o become invalid.
func (o Object) Reset() error {
	if err := o.check(); err != nil {
		return err
	}
	switch o.state() {
	case stateAtStart, stateMidScan:
		o.c.rewindInto(o.depth, o.start)
		return nil
	}
	return OutOfOrderIteration
}

// CountFields reports the number of fields in o. The cursor must be at the
// first field; it is returned there after counting.
func (o Object) CountFields() (int, error) {
	if err := o.check(); err != nil {
		return 0, err
	}
	switch o.state() {
	case stateAtStart:
	case stateClosed:
		if o.IsEmpty() {
			return 0, nil
		}
		return 0, OutOfOrderIteration
	default:
		return 0, OutOfOrderIteration
	}
	var n int
	it := o.Iter()
	for it.Next() {
		n++
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	o.c.rewindInto(o.depth, o.start)
	return n, nil
}

// Iter returns an iterator over the fields of o, starting at the cursor.
func (o Object) Iter() *FieldIterator { return &FieldIterator{o: o} }

// All returns a sequence of the fields of o. If iteration fails, the last
// field yielded has no key and its value carries the error.
func (o Object) All() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		it := o.Iter()
		for it.Next() {
			if !yield(it.Field()) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(Field{Value: failed(err)})
		}
	}
}

// A Field is a member of a JSON object.
type Field struct {
	Key   RawString // the key, still escaped
	Value Value
}

// UnescapedKey decodes and returns the key of f.
func (f Field) UnescapedKey() (string, error) { return f.Key.Unescape() }

// A FieldIterator visits the fields of an object in order.
type FieldIterator struct {
	o    Object
	cur  Field
	done bool
	err  error
}

// Next advances it to the next field and reports whether one exists. The
// unused part of the previous field's value is skipped.
func (it *FieldIterator) Next() bool {
	if it.done {
		return false
	} else if err := it.o.check(); err != nil {
		return it.fail(err)
	}
	c := it.o.c
	switch it.o.state() {
	case stateClosed:
		it.done = true
		return false
	case stateUnopened, stateStale:
		return it.fail(OutOfOrderIteration)
	case stateAtStart:
		// The first key is under the cursor.
	case stateMidScan:
		more, err := it.o.nextField()
		if err != nil {
			return it.fail(err)
		} else if !more {
			it.done = true
			return false
		}
	}
	key := c.text(c.pos)
	if len(key) < 2 || key[0] != '"' || key[len(key)-1] != '"' {
		return it.fail(TapeError)
	}
	c.pos++
	if c.peek() != ':' {
		return it.fail(TapeError)
	}
	c.pos++
	it.cur = Field{
		Key:   RawString{text: key[1 : len(key)-1 : len(key)-1]},
		Value: Value{c: c, start: c.pos, depth: it.o.depth + 1},
	}
	return true
}

func (it *FieldIterator) fail(err error) bool {
	it.err = err
	it.done = true
	it.cur = Field{Value: failed(err)}
	return false
}

// Field returns the current field of it.
func (it *FieldIterator) Field() Field { return it.cur }

// Key returns the raw key of the current field.
func (it *FieldIterator) Key() RawString { return it.cur.Key }

// Value returns the value of the current field.
func (it *FieldIterator) Value() Value { return it.cur.Value }

// Err reports the error, if any, that ended the iteration.
func (it *FieldIterator) Err() error { return it.err }

// A RawString is the undecoded text of a JSON string, without its quotation
// marks. It aliases the input document.
type RawString struct {
	text []byte
}

// Bytes returns the raw text of s. The caller must not modify it.
func (s RawString) Bytes() []byte { return s.text }

// String returns a copy of the raw text of s, escapes and all.
func (s RawString) String() string { return string(s.text) }

// IsEqual reports whether the raw text of s is exactly want, without
// unescaping. This is cheap and suffices when want contains no characters
// that the input might have escaped.
func (s RawString) IsEqual(want string) bool { return mem.B(s.text).EqualString(want) }

// Unescape decodes s in strict mode.
func (s RawString) Unescape() (string, error) {
	raw := mem.B(s.text)
	if !escape.NeedsDecode(raw) {
		return raw.StringCopy(), nil
	}
	out, err := escape.Decode(nil, raw, escape.Strict)
	if err != nil {
		return "", StringError
	}
	return string(out), nil
}
