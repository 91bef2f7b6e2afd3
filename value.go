// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"iter"

	"go4.org/mem"

	"github.com/creachadair/ondemand/internal/escape"
)

// A Value is a lazy handle to one JSON value in a document. It holds no
// decoded data: every accessor decodes the underlying token when called.
// Values are small and may be copied freely; all copies share the cursor of
// the document they came from.
//
// A Value may also carry an error, in which case every method reports that
// error without doing any work. This lets navigation chain without checking
// for errors at each step:
//
//	id, err := doc.Root().Field("items").At(0).Field("id").GetInt64()
//
// Accessors that decode a scalar consume the value: the cursor must be on the
// value when the accessor is called, and moves past it on success. Calling
// a second consuming accessor on the same value reports OutOfOrderIteration.
// If an accessor fails, the value is not consumed, so the caller may try
// another accessor (for example GetInt64 after GetDouble reports
// IncorrectType).
type Value struct {
	c     *cursor
	start int // index of the value's first token
	depth int // number of containers enclosing the value
	err   error
}

// failed returns a Value that carries err.
func failed(err error) Value { return Value{err: err} }

// Err reports the error carried by v, or nil.
func (v Value) Err() error {
	if v.err == nil && v.c == nil {
		return Uninitialized
	}
	return v.err
}

// token returns the text of the token under v, which must also be under the
// cursor. The token is not consumed.
func (v Value) token() ([]byte, error) {
	if err := v.Err(); err != nil {
		return nil, err
	} else if v.c.pos != v.start {
		return nil, OutOfOrderIteration
	}
	return v.c.text(v.start), nil
}

// peekToken returns the text of the token under v, wherever the cursor is.
func (v Value) peekToken() ([]byte, error) {
	if err := v.Err(); err != nil {
		return nil, err
	}
	text := v.c.text(v.start)
	if len(text) == 0 {
		return nil, TapeError
	}
	return text, nil
}

// consume moves the cursor past the scalar token under v.
func (v Value) consume() { v.c.pos = v.start + 1 }

// Type reports the kind of v, without consuming it.
func (v Value) Type() (Type, error) {
	text, err := v.peekToken()
	if err != nil {
		return TypeInvalid, err
	}
	if t := typeOf(text[0]); t != TypeInvalid {
		return t, nil
	}
	return TypeInvalid, TapeError
}

// IsScalar reports whether v is a value other than an array or object.
func (v Value) IsScalar() (bool, error) {
	t, err := v.Type()
	if err != nil {
		return false, err
	}
	return t.IsScalar(), nil
}

// IsNegative reports whether v is a number with a leading minus sign. It
// looks only at the first byte of the token and reports false if v is not a
// number or carries an error.
func (v Value) IsNegative() bool {
	text, err := v.peekToken()
	return err == nil && text[0] == '-'
}

// IsInteger reports whether v is an integer that fits in an int64 or uint64.
// The decision is syntactic: "100" is an integer, but "1e2" and "100.0" are
// not, although all three denote the same quantity.
func (v Value) IsInteger() (bool, error) {
	text, err := v.peekToken()
	if err != nil {
		return false, err
	} else if typeOf(text[0]) != TypeNumber {
		return false, IncorrectType
	}
	return isInteger(text)
}

// GetNumberType reports the representation GetNumber would choose for v,
// without consuming it.
func (v Value) GetNumberType() (NumberType, error) {
	text, err := v.peekToken()
	if err != nil {
		return 0, err
	} else if typeOf(text[0]) != TypeNumber {
		return 0, IncorrectType
	}
	return numberType(text)
}

// GetNumber decodes v as a number without committing to a type in advance.
// Integers that do not fit in 64 bits are returned as floating-point values.
func (v Value) GetNumber() (Number, error) {
	text, err := v.token()
	if err != nil {
		return Number{}, err
	} else if typeOf(text[0]) != TypeNumber {
		return Number{}, IncorrectType
	}
	n, err := parseNumber(text)
	if err == nil {
		v.consume()
	}
	return n, err
}

// GetDouble decodes v as a floating-point number.
func (v Value) GetDouble() (float64, error) {
	return decodeNumber(v, false, parseDouble)
}

// GetDoubleInString decodes v as a floating-point number written inside a
// JSON string, such as "3.5".
func (v Value) GetDoubleInString() (float64, error) {
	return decodeNumber(v, true, parseDouble)
}

// GetInt64 decodes v as a signed integer. It reports IncorrectType if v has
// a fraction or exponent, and NumberOutOfRange if it does not fit.
func (v Value) GetInt64() (int64, error) {
	return decodeNumber(v, false, parseInt64)
}

// GetInt64InString decodes v as a signed integer written inside a JSON
// string, such as "-12".
func (v Value) GetInt64InString() (int64, error) {
	return decodeNumber(v, true, parseInt64)
}

// GetUint64 decodes v as an unsigned integer. It reports IncorrectType if v
// has a fraction or exponent, and NumberOutOfRange if it does not fit.
func (v Value) GetUint64() (uint64, error) {
	return decodeNumber(v, false, parseUint64)
}

// GetUint64InString decodes v as an unsigned integer written inside a JSON
// string, such as "18446744073709551615".
func (v Value) GetUint64InString() (uint64, error) {
	return decodeNumber(v, true, parseUint64)
}

func decodeNumber[T any](v Value, quoted bool, parse func([]byte) (T, error)) (T, error) {
	var zero T
	text, err := v.token()
	if err != nil {
		return zero, err
	}
	if quoted {
		if text[0] != '"' {
			return zero, IncorrectType
		} else if len(text) < 2 || text[len(text)-1] != '"' {
			return zero, StringError
		}
		text = text[1 : len(text)-1]
		if len(text) == 0 {
			return zero, NumberError
		}
	} else if typeOf(text[0]) != TypeNumber {
		return zero, IncorrectType
	}
	out, err := parse(text)
	if err != nil {
		return zero, err
	}
	v.consume()
	return out, nil
}

// GetBool decodes v as a Boolean. The token must be exactly true or false.
func (v Value) GetBool() (bool, error) {
	text, err := v.token()
	if err != nil {
		return false, err
	} else if typeOf(text[0]) != TypeBoolean {
		return false, IncorrectType
	}
	switch t := mem.B(text); {
	case t.EqualString("true"):
		v.consume()
		return true, nil
	case t.EqualString("false"):
		v.consume()
		return false, nil
	}
	return false, LiteralError
}

// IsNull reports whether v is null. The value is consumed if and only if it
// is null; otherwise it remains available to other accessors.
func (v Value) IsNull() (bool, error) {
	text, err := v.token()
	if err != nil {
		return false, err
	} else if typeOf(text[0]) != TypeNull {
		return false, nil
	} else if !mem.B(text).EqualString("null") {
		return false, LiteralError
	}
	v.consume()
	return true, nil
}

// GetString decodes v as a string and returns a copy of its contents.
// If allowReplacement is true, an unpaired UTF-16 surrogate escape is
// replaced by U+FFFD; otherwise it is reported as StringError.
func (v Value) GetString(allowReplacement bool) (string, error) {
	b, err := v.GetStringBytes(allowReplacement)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetStringBytes decodes v as a string, as GetString does, but without
// copying. The result aliases either the input or the document's string
// buffer and remains valid until the document is rewound (including by
// Document.AtPointer and Document.AtPath) or the parser is used for another
// document. The caller must not modify it.
func (v Value) GetStringBytes(allowReplacement bool) ([]byte, error) {
	mode := escape.Strict
	if allowReplacement {
		mode = escape.Replace
	}
	return v.decodeString(mode)
}

// GetWobblyString decodes v as a string, encoding an unpaired UTF-16
// surrogate escape as a three-byte sequence (WTF-8) rather than rejecting or
// replacing it. The result need not be valid UTF-8. It is valid for the same
// lifetime as the result of GetStringBytes.
func (v Value) GetWobblyString() ([]byte, error) { return v.decodeString(escape.Wobbly) }

func (v Value) decodeString(mode escape.Mode) ([]byte, error) {
	text, err := v.token()
	if err != nil {
		return nil, err
	} else if text[0] != '"' {
		return nil, IncorrectType
	}
	out, err := v.c.decodeString(text, mode)
	if err != nil {
		return nil, err
	}
	v.consume()
	return out, nil
}

// decodeString decodes the quoted string token text. A string with no
// escapes is returned as a view of the input; otherwise the decoding is
// appended to the document's string buffer.
func (c *cursor) decodeString(text []byte, mode escape.Mode) ([]byte, error) {
	if len(text) < 2 || text[len(text)-1] != '"' {
		return nil, StringError
	}
	raw := text[1 : len(text)-1 : len(text)-1]
	if !escape.NeedsDecode(mem.B(raw)) {
		return raw, nil
	}
	n := len(c.str)
	out, err := escape.Decode(c.str, mem.B(raw), mode)
	if err != nil {
		return nil, StringError
	}
	c.str = out
	return out[n:len(out):len(out)], nil
}

// GetRawString returns the undecoded contents of the string v, without its
// quotation marks, and consumes it.
func (v Value) GetRawString() (RawString, error) {
	text, err := v.token()
	if err != nil {
		return RawString{}, err
	} else if text[0] != '"' {
		return RawString{}, IncorrectType
	} else if len(text) < 2 || text[len(text)-1] != '"' {
		return RawString{}, StringError
	}
	v.consume()
	return RawString{text: text[1 : len(text)-1 : len(text)-1]}, nil
}

// GetArray enters v as an array. The returned Array shares the cursor, which
// is left at the first element.
func (v Value) GetArray() (Array, error) {
	text, err := v.token()
	if err != nil {
		return Array{}, err
	} else if text[0] != '[' {
		return Array{}, IncorrectType
	}
	v.c.enter()
	if v.c.peek() == ']' {
		v.c.leave()
	}
	return Array{c: v.c, start: v.start, depth: v.depth}, nil
}

// GetObject enters v as an object. The returned Object shares the cursor,
// which is left at the first field.
func (v Value) GetObject() (Object, error) {
	text, err := v.token()
	if err != nil {
		return Object{}, err
	} else if text[0] != '{' {
		return Object{}, IncorrectType
	}
	v.c.enter()
	if v.c.peek() == '}' {
		v.c.leave()
	}
	return Object{c: v.c, start: v.start, depth: v.depth}, nil
}

// startOrResumeObject enters v as an object if the cursor is on it, or
// otherwise resumes the object v was already entered as, wherever its scan
// stopped.
func (v Value) startOrResumeObject() (Object, error) {
	if err := v.Err(); err != nil {
		return Object{}, err
	} else if v.c.pos == v.start {
		return v.GetObject()
	} else if v.c.first(v.start) != '{' {
		return Object{}, IncorrectType
	}
	return Object{c: v.c, start: v.start, depth: v.depth}, nil
}

// FindField returns the value of the field of object v with the given key,
// searching forward from the cursor. Repeated calls on the same value
// resume where the previous search stopped, so several fields can be read in
// one pass if they are requested in document order. A key that occurs
// before the cursor is not found; see FindFieldUnordered.
func (v Value) FindField(key string) Value {
	o, err := v.startOrResumeObject()
	if err != nil {
		return failed(err)
	}
	return o.FindField(key)
}

// FindFieldUnordered returns the value of the field of object v with the
// given key, searching forward from the cursor and then, if necessary, from
// the start of the object up to where the search began.
func (v Value) FindFieldUnordered(key string) Value {
	o, err := v.startOrResumeObject()
	if err != nil {
		return failed(err)
	}
	return o.FindFieldUnordered(key)
}

// Field is shorthand for FindFieldUnordered.
func (v Value) Field(key string) Value { return v.FindFieldUnordered(key) }

// At enters v as an array and returns its element at index i. This costs
// time proportional to i, since every earlier element is skipped.
func (v Value) At(i int) Value {
	a, err := v.GetArray()
	if err != nil {
		return failed(err)
	}
	return a.At(i)
}

// Iter enters v as an array and returns an iterator over its elements. If v
// is not an array, the iterator is empty and its Err method reports why.
func (v Value) Iter() *ArrayIterator {
	a, err := v.GetArray()
	if err != nil {
		return &ArrayIterator{index: -1, cur: failed(err), done: true, err: err}
	}
	return a.Iter()
}

// All enters v as an array and returns a sequence of its elements. If v is
// not an array, the sequence yields a single value carrying the error.
func (v Value) All() iter.Seq[Value] {
	a, err := v.GetArray()
	if err != nil {
		return func(yield func(Value) bool) { yield(failed(err)) }
	}
	return a.All()
}

// CountElements reports the number of elements in the array v. The whole
// array is scanned, after which the cursor is moved back to v so that v can
// still be entered and iterated as if it had not been counted.
func (v Value) CountElements() (int, error) {
	a, err := v.GetArray()
	if err != nil {
		return 0, err
	}
	n, err := a.CountElements()
	v.c.rewindTo(v.depth, v.start)
	return n, err
}

// CountFields reports the number of fields in the object v. Like
// CountElements, it scans the whole object and then moves the cursor back to
// v.
func (v Value) CountFields() (int, error) {
	o, err := v.GetObject()
	if err != nil {
		return 0, err
	}
	n, err := o.CountFields()
	v.c.rewindTo(v.depth, v.start)
	return n, err
}

// RawJSONToken returns the source text of the first token of v, without
// decoding or consuming it. For a container, this is just the opening
// bracket or brace. It returns nil if v carries an error.
func (v Value) RawJSONToken() []byte {
	text, _ := v.peekToken()
	return text
}

// RawJSON consumes v and returns its complete source text. For a container
// this costs time proportional to the size of the container.
func (v Value) RawJSON() ([]byte, error) {
	if _, err := v.token(); err != nil {
		return nil, err
	}
	if err := v.c.skipValue(); err != nil {
		return nil, err
	}
	return v.c.buf[v.c.toks[v.start].Pos:v.c.toks[v.c.pos-1].End], nil
}

// Span reports the location of the first token of v in the input.
func (v Value) Span() Span {
	if v.Err() != nil || v.start >= len(v.c.toks) {
		return Span{}
	}
	return v.c.toks[v.start]
}

// CurrentDepth reports the number of containers enclosing the cursor.
func (v Value) CurrentDepth() int {
	if v.c == nil {
		return 0
	}
	return v.c.depth
}

// CurrentLocation reports the byte offset of the next unconsumed token in the
// input, or the length of the input if every token has been consumed.
func (v Value) CurrentLocation() (int, error) {
	if err := v.Err(); err != nil {
		return 0, err
	}
	return v.c.location(), nil
}
