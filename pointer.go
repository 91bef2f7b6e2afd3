// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"errors"

	"github.com/creachadair/ondemand/pointer"
)

// AtPointer returns the value identified by the JSON Pointer (RFC 6901) p,
// relative to v. The empty pointer identifies v itself. Object members are
// found with FindFieldUnordered and array elements with At, so the cursor
// must be at v (or at the start of its contents) when AtPointer is called.
// To look up several pointers in one document, use Document.AtPointer,
// which rewinds first.
//
// A malformed pointer, or one that descends into a scalar, reports
// InvalidJSONPointer. The index "-" reports IndexOutOfBounds.
func (v Value) AtPointer(p string) Value {
	if err := v.Err(); err != nil {
		return failed(err)
	} else if p == "" {
		return v
	}
	t, err := v.Type()
	if err != nil {
		return failed(err)
	}
	switch t {
	case TypeArray:
		a, err := v.GetArray()
		if err != nil {
			return failed(err)
		}
		return a.AtPointer(p)
	case TypeObject:
		o, err := v.startOrResumeObject()
		if err != nil {
			return failed(err)
		}
		return o.AtPointer(p)
	}
	return failed(InvalidJSONPointer)
}

// AtPointer returns the value identified by the JSON Pointer p, whose first
// reference token must be an index into a.
func (a Array) AtPointer(p string) Value {
	tok, rest, err := pointer.Split(p)
	if err != nil {
		return failed(pointerError(err))
	}
	i, err := pointer.Index(tok)
	if err != nil {
		return failed(pointerError(err))
	}
	return a.At(i).AtPointer(rest)
}

// AtPointer returns the value identified by the JSON Pointer p, whose first
// reference token must be the key of a field of o.
func (o Object) AtPointer(p string) Value {
	tok, rest, err := pointer.Split(p)
	if err != nil {
		return failed(pointerError(err))
	}
	key, err := pointer.Unescape(tok)
	if err != nil {
		return failed(pointerError(err))
	}
	return o.FindFieldUnordered(key).AtPointer(rest)
}

// AtPath returns the value identified by the JSONPath expression p,
// relative to v. The expression is converted to a JSON Pointer by
// pointer.FromPath; an expression that cannot be converted reports
// InvalidJSONPointer.
func (v Value) AtPath(p string) Value {
	if err := v.Err(); err != nil {
		return failed(err)
	}
	ptr, err := pointer.FromPath(p)
	if err != nil {
		return failed(InvalidJSONPointer)
	}
	return v.AtPointer(ptr)
}

func pointerError(err error) ErrorCode {
	if errors.Is(err, pointer.ErrPastEnd) {
		return IndexOutOfBounds
	}
	return InvalidJSONPointer
}
