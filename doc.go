// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ondemand implements on-demand navigation of JSON documents.
//
// Rather than decoding a whole document into a tree, a Parser builds a
// structural index of the input (the location of every token) and returns
// a Document whose values are decoded only when the caller asks for them.
// Navigation is forward-only: a single cursor, shared by every handle
// derived from the document, moves through the input as values are used.
//
// # Parsing
//
// Construct a Parser and call its Iterate method. Iterate checks that the
// input is one well-formed JSON value, and reports an error of concrete type
// *ondemand.SyntaxError if it is not:
//
//	p := ondemand.NewParser()
//	doc, err := p.Iterate(input)
//	if err != nil {
//	   log.Fatalf("Iterate: %v", err)
//	}
//
// The contents of strings, numbers, and literals are checked when they are
// accessed, so a malformed number deep in a document that is never read does
// not cause an error.
//
// # Values
//
// A Value is a handle to a single JSON value. Accessors such as GetString,
// GetInt64, and GetBool decode the value and move the cursor past it.
// Navigation methods such as Field and At return further Values, and carry
// any error along with them, so that a chain of lookups can be checked once
// at the end:
//
//	name, err := doc.Root().Field("user").Field("name").GetString(false)
//
// Arrays and objects are visited in order with iterators:
//
//	arr, err := doc.Root().GetArray()
//	...
//	for v := range arr.All() {
//	   n, err := v.GetInt64()
//	   ...
//	}
//
// # Errors
//
// Failures are reported as ErrorCode values, which satisfy the error
// interface and may be compared with errors.Is. Use CodeOf to recover the
// code from an error that wraps one, such as a *SyntaxError.
//
// # Ordering
//
// Because the cursor only moves forward, a value can be consumed once. A
// second attempt to decode the same value, or an attempt to use a handle
// the cursor has already passed, reports OutOfOrderIteration. To start over,
// call the Rewind method of the Document. FindField searches forward from
// the cursor only; FindFieldUnordered (and its shorthand Field) wraps
// around to the beginning of the object if necessary.
//
// # Pointers
//
// The AtPointer methods resolve a JSON Pointer (RFC 6901), and AtPath
// resolves a JSONPath expression that names a single value. See the pointer
// package for the syntax of both.
package ondemand
