// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"errors"
	"fmt"
)

// An ErrorCode identifies the kind of failure reported by an operation.
// Codes are totally ordered, and Success is the only code that does not
// denote an error.
//
// An ErrorCode satisfies the error interface, so callers may compare a
// returned error against a code with errors.Is:
//
//	if errors.Is(err, ondemand.NoSuchField) { ... }
type ErrorCode uint8

// Constants defining the valid ErrorCode values.
const (
	Success             ErrorCode = iota // no error
	Uninitialized                        // use of a zero Value, Array, or Object
	Empty                                // input contains no JSON value
	TapeError                            // structural fault: cursor ran past the index
	DepthError                           // nesting exceeds the parser maximum
	UnclosedString                       // string token missing its closing quote
	UTF8Error                            // input is not valid UTF-8
	TrailingContent                      // extra input after the root value
	StringError                          // invalid escape, control byte, or surrogate
	NumberError                          // number does not match JSON grammar
	NumberOutOfRange                     // integer does not fit the requested type
	LiteralError                         // misspelled true, false, or null
	IncorrectType                        // value is not of the requested kind
	NoSuchField                          // object has no field with the given key
	IndexOutOfBounds                     // array has no element at the given index
	InvalidJSONPointer                   // malformed JSON Pointer or path
	OutOfOrderIteration                  // value was consumed, or is not under the cursor

	numErrorCodes // sentinel, do not use
)

var codeText = [...]string{
	Success:             "no error",
	Uninitialized:       "uninitialized value",
	Empty:               "no JSON value found",
	TapeError:           "structural error in document",
	DepthError:          "document exceeds maximum depth",
	UnclosedString:      "unclosed string",
	UTF8Error:           "invalid UTF-8",
	TrailingContent:     "unexpected content after the document",
	StringError:         "invalid string",
	NumberError:         "invalid number",
	NumberOutOfRange:    "number out of range",
	LiteralError:        "invalid literal",
	IncorrectType:       "incorrect type",
	NoSuchField:         "no such field",
	IndexOutOfBounds:    "index out of bounds",
	InvalidJSONPointer:  "invalid JSON pointer",
	OutOfOrderIteration: "value accessed out of order",
}

// Error satisfies the error interface.
func (e ErrorCode) Error() string {
	if e >= numErrorCodes {
		return fmt.Sprintf("unknown error code %d", uint8(e))
	}
	return codeText[e]
}

func (e ErrorCode) String() string { return e.Error() }

// CodeOf reports the ErrorCode carried by err. It returns Success if err is
// nil, and TapeError if err does not wrap an ErrorCode.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return TapeError
}

// SyntaxError is the concrete type of errors reported when the structural
// index of an input cannot be built.
type SyntaxError struct {
	Offset  int       // byte offset of the failure, 0-based
	Code    ErrorCode // the kind of failure
	Message string
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at offset %d: %s: %s", s.Offset, s.Code, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.Code }
