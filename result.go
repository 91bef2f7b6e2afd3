// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

import "fmt"

// A Result is either a value of type T or an error. It lets a sequence of
// fallible steps be written as a chain, with the first error carried through
// to the end:
//
//	r := ondemand.AndThen(ondemand.Get[ondemand.Object](v), countFields)
//	n, err := r.Get()
//
// The zero Result holds the zero value of T and no error. Use Fail to build
// a Result that holds an error.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a successful Result holding v.
func Ok[T any](v T) Result[T] { return Result[T]{value: v} }

// Fail returns a Result holding err. If err == nil, the Result holds
// Uninitialized instead, so that a failed Result always carries an error.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = Uninitialized
	}
	return Result[T]{err: err}
}

// ResultOf combines a value and an error in the usual Go style into a Result.
func ResultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: v}
}

// Get returns the value and error of r.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

// Err returns the error of r, or nil.
func (r Result[T]) Err() error { return r.err }

// Must returns the value of r, and panics if r holds an error.
func (r Result[T]) Must() T {
	if r.err != nil {
		panic(fmt.Sprintf("ondemand: result has error: %v", r.err))
	}
	return r.value
}

// Must returns v if err == nil, and otherwise panics. It is intended for
// tests and for inputs whose shape is already known.
func Must[T any](v T, err error) T { return ResultOf(v, err).Must() }

// Or returns the value of r, or dflt if r holds an error.
func (r Result[T]) Or(dflt T) T {
	if r.err != nil {
		return dflt
	}
	return r.value
}

// Map applies f to the value of r. If r holds an error, f is not called and
// the error is carried to the result.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Ok(f(r.value))
}

// AndThen applies the fallible function f to the value of r. If r holds an
// error, f is not called and the error is carried to the result.
func AndThen[T, U any](r Result[T], f func(T) (U, error)) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return ResultOf(f(r.value))
}

// Get decodes v as a value of type T. The supported types are:
//
//	Value       v itself, unconsumed
//	Array       as by v.GetArray
//	Object      as by v.GetObject
//	RawString   as by v.GetRawString
//	string      as by v.GetString(false)
//	[]byte      as by v.GetStringBytes(false)
//	Number      as by v.GetNumber
//	float64     as by v.GetDouble
//	int64       as by v.GetInt64
//	uint64      as by v.GetUint64
//	bool        as by v.GetBool
//
// Any other type reports IncorrectType.
func Get[T any](v Value) Result[T] {
	var out T
	var err error
	switch p := any(&out).(type) {
	case *Value:
		*p, err = v, v.Err()
	case *Array:
		*p, err = v.GetArray()
	case *Object:
		*p, err = v.GetObject()
	case *RawString:
		*p, err = v.GetRawString()
	case *string:
		*p, err = v.GetString(false)
	case *[]byte:
		*p, err = v.GetStringBytes(false)
	case *Number:
		*p, err = v.GetNumber()
	case *float64:
		*p, err = v.GetDouble()
	case *int64:
		*p, err = v.GetInt64()
	case *uint64:
		*p, err = v.GetUint64()
	case *bool:
		*p, err = v.GetBool()
	default:
		err = IncorrectType
	}
	return ResultOf(out, err)
}
