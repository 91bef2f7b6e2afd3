// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"errors"
	"math"
	"strconv"

	"go4.org/mem"
)

// NumberType is the representation chosen for a JSON number.
type NumberType byte

// Constants defining the valid NumberType values.
const (
	FloatingPoint   NumberType = iota + 1 // fraction, exponent, or too large for 64 bits
	SignedInteger                         // integer in the range of int64
	UnsignedInteger                       // integer above the range of int64 but within uint64
)

func (t NumberType) String() string {
	switch t {
	case FloatingPoint:
		return "floating-point"
	case SignedInteger:
		return "signed integer"
	case UnsignedInteger:
		return "unsigned integer"
	default:
		return "invalid number type"
	}
}

// A Number is a decoded JSON number. Its type records which of the three
// representations holds the value.
type Number struct {
	typ NumberType
	i   int64
	u   uint64
	f   float64
}

// Type reports the representation of n.
func (n Number) Type() NumberType { return n.typ }

// IsInt64 reports whether n holds a signed integer.
func (n Number) IsInt64() bool { return n.typ == SignedInteger }

// IsUint64 reports whether n holds an unsigned integer above math.MaxInt64.
func (n Number) IsUint64() bool { return n.typ == UnsignedInteger }

// IsFloat64 reports whether n holds a floating-point value.
func (n Number) IsFloat64() bool { return n.typ == FloatingPoint }

// Int64 returns the value of n as an int64. The result is truncated or
// wrapped if n is not a signed integer.
func (n Number) Int64() int64 {
	switch n.typ {
	case UnsignedInteger:
		return int64(n.u)
	case FloatingPoint:
		return int64(n.f)
	}
	return n.i
}

// Uint64 returns the value of n as a uint64. The result is truncated or
// wrapped if n is not an integer in range.
func (n Number) Uint64() uint64 {
	switch n.typ {
	case SignedInteger:
		return uint64(n.i)
	case FloatingPoint:
		return uint64(n.f)
	}
	return n.u
}

// Float64 returns the value of n as a float64, rounding large integers.
func (n Number) Float64() float64 {
	switch n.typ {
	case SignedInteger:
		return float64(n.i)
	case UnsignedInteger:
		return float64(n.u)
	}
	return n.f
}

func (n Number) String() string {
	switch n.typ {
	case SignedInteger:
		return strconv.FormatInt(n.i, 10)
	case UnsignedInteger:
		return strconv.FormatUint(n.u, 10)
	case FloatingPoint:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return n.typ.String()
}

// numberShape records the syntactic facts about a number token that are
// known after checking it against the JSON grammar.
type numberShape struct {
	neg      bool   // leading minus sign
	integral bool   // no fraction and no exponent
	digits   mem.RO // integer digits without sign, when integral
}

// checkNumber reports the shape of text, or NumberError if text does not
// match the JSON number grammar:
//
//	number = [ "-" ] int [ frac ] [ exp ]
//	int    = "0" / digit1-9 *digit
//	frac   = "." 1*digit
//	exp    = ("e" / "E") [ "-" / "+" ] 1*digit
func checkNumber(text []byte) (numberShape, error) {
	var sh numberShape
	i := 0
	if i < len(text) && text[i] == '-' {
		sh.neg = true
		i++
	}
	start := i
	if i < len(text) && text[i] == '0' {
		// A leading zero is OK only if it is the only integer digit.
		i++
		if i < len(text) && isDigit(text[i]) {
			return sh, NumberError
		}
	} else if n := countDigits(text[i:]); n == 0 {
		return sh, NumberError
	} else {
		i += n
	}
	sh.digits = mem.B(text[start:i])
	sh.integral = true

	if i < len(text) && text[i] == '.' {
		i++
		n := countDigits(text[i:])
		if n == 0 {
			return sh, NumberError // no digits after decimal point
		}
		i += n
		sh.integral = false
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		n := countDigits(text[i:])
		if n == 0 {
			return sh, NumberError // missing exponent digits
		}
		i += n
		sh.integral = false
	}
	if i != len(text) {
		return sh, NumberError // trailing garbage
	}
	return sh, nil
}

func countDigits(text []byte) int {
	for i, b := range text {
		if !isDigit(b) {
			return i
		}
	}
	return len(text)
}

// parseNumber decodes text as a Number. An integral token that does not fit
// in 64 bits is returned as a floating-point value.
func parseNumber(text []byte) (Number, error) {
	sh, err := checkNumber(text)
	if err != nil {
		return Number{}, err
	}
	if sh.integral {
		u, err := mem.ParseUint(sh.digits, 10, 64)
		switch {
		case err != nil:
			// Out of range: fall through to floating point.
		case !sh.neg && u <= math.MaxInt64:
			return Number{typ: SignedInteger, i: int64(u)}, nil
		case !sh.neg:
			return Number{typ: UnsignedInteger, u: u}, nil
		case u <= 1<<63:
			return Number{typ: SignedInteger, i: -int64(u)}, nil
		}
	}
	f, err := parseFloat(text)
	if err != nil {
		return Number{}, err
	}
	return Number{typ: FloatingPoint, f: f}, nil
}

// numberType classifies text without building its value.
func numberType(text []byte) (NumberType, error) {
	n, err := parseNumber(text)
	return n.typ, err
}

// parseInt64 decodes text as a signed integer.
func parseInt64(text []byte) (int64, error) {
	sh, err := checkNumber(text)
	if err != nil {
		return 0, err
	} else if !sh.integral {
		return 0, IncorrectType
	}
	v, err := mem.ParseInt(mem.B(text), 10, 64)
	if err != nil {
		return 0, NumberOutOfRange
	}
	return v, nil
}

// parseUint64 decodes text as an unsigned integer.
func parseUint64(text []byte) (uint64, error) {
	sh, err := checkNumber(text)
	if err != nil {
		return 0, err
	} else if !sh.integral {
		return 0, IncorrectType
	}
	v, err := mem.ParseUint(sh.digits, 10, 64)
	if err != nil || (sh.neg && v != 0) {
		return 0, NumberOutOfRange
	}
	return v, nil
}

// parseDouble decodes text as a floating-point value. Integers of any size
// are accepted and rounded.
func parseDouble(text []byte) (float64, error) {
	if _, err := checkNumber(text); err != nil {
		return 0, err
	}
	return parseFloat(text)
}

// parseFloat converts grammatical number text to float64. A value too large
// for float64 is an error rather than an infinity.
func parseFloat(text []byte) (float64, error) {
	f, err := mem.ParseFloat(mem.B(text), 64)
	if err != nil {
		var nerr *strconv.NumError
		if errors.As(err, &nerr) && nerr.Err == strconv.ErrRange && !math.IsInf(f, 0) {
			return f, nil // underflow rounds to zero, which is fine
		}
		return 0, NumberError
	}
	return f, nil
}

// isInteger reports whether text is an integer token, decided by syntax and
// range alone: "100" is an integer but "1e2" is not, even though both denote
// the same value.
func isInteger(text []byte) (bool, error) {
	sh, err := checkNumber(text)
	if err != nil {
		return false, err
	} else if !sh.integral {
		return false, nil
	}
	u, err := mem.ParseUint(sh.digits, 10, 64)
	if err != nil {
		return false, nil
	}
	return !sh.neg || u <= 1<<63, nil
}
