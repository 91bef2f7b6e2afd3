// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf8"

	"go4.org/mem"
)

// A Mode selects how Decode treats UTF-16 surrogate escapes that do not form
// a valid pair.
type Mode byte

const (
	// Strict reports an error for a lone or mismatched surrogate.
	Strict Mode = iota

	// Replace substitutes the Unicode replacement rune for a lone surrogate.
	Replace

	// Wobbly encodes a lone surrogate as a three-byte sequence in the manner
	// of WTF-8. The output is not valid UTF-8 but preserves the input.
	Wobbly
)

// Errors reported by Decode.
var (
	ErrIncomplete   = errors.New("incomplete escape sequence")
	ErrInvalidEsc   = errors.New("invalid escape sequence")
	ErrControl      = errors.New("unescaped control character")
	ErrSurrogate    = errors.New("invalid surrogate pair")
	ErrInvalidHex   = errors.New("invalid hex digit in Unicode escape")
	errNotSurrogate = errors.New("not a surrogate")
)

// Decode appends to dst the decoding of src, the contents of a JSON string
// with the enclosing double quotation marks already removed, and returns the
// extended slice.
//
// Escape sequences are replaced with their unescaped equivalents. A byte
// below U+0020, an unknown escape, or an incomplete escape is an error in any
// mode. On error, the contents of the returned slice are unspecified.
func Decode(dst []byte, src mem.RO, mode Mode) ([]byte, error) {
	for {
		i := indexSpecial(src)
		if i < 0 {
			return mem.Append(dst, src), nil
		}
		dst = mem.Append(dst, src.SliceTo(i))
		if src.At(i) != '\\' {
			return dst, ErrControl
		}

		// Decode the escape that follows the backslash.
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return dst, ErrIncomplete
		}
		esc := src.At(0)
		src = src.SliceFrom(1)
		switch esc {
		case '"', '\\', '/':
			dst = append(dst, esc)
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			var err error
			dst, src, err = decodeUnicode(dst, src, mode)
			if err != nil {
				return dst, err
			}
		default:
			return dst, ErrInvalidEsc
		}
	}
}

// decodeUnicode decodes the four hex digits of a \u escape at the front of
// src, plus the low half of a surrogate pair if one follows.
func decodeUnicode(dst []byte, src mem.RO, mode Mode) ([]byte, mem.RO, error) {
	if src.Len() < 4 {
		return dst, src, ErrIncomplete
	}
	hi, ok := parseHex4(src)
	if !ok {
		return dst, src, ErrInvalidHex
	}
	src = src.SliceFrom(4)
	switch {
	case hi < 0xd800 || hi > 0xdfff:
		return utf8.AppendRune(dst, hi), src, nil
	case hi <= 0xdbff:
		// A high surrogate must be followed by an escaped low surrogate.
		if lo, err := lowSurrogate(src); err == nil {
			r := 0x10000 + (hi-0xd800)<<10 + (lo - 0xdc00)
			return utf8.AppendRune(dst, r), src.SliceFrom(6), nil
		} else if err != errNotSurrogate {
			return dst, src, err
		}
	}

	// Reaching here, hi is a surrogate that is not part of a valid pair.
	switch mode {
	case Replace:
		return utf8.AppendRune(dst, utf8.RuneError), src, nil
	case Wobbly:
		return appendWobbly(dst, hi), src, nil
	default:
		return dst, src, ErrSurrogate
	}
}

// lowSurrogate reports the value of a \uDC00-\uDFFF escape at the front of
// src. It returns errNotSurrogate if src does not begin with such an escape.
func lowSurrogate(src mem.RO) (rune, error) {
	if src.Len() < 2 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, errNotSurrogate
	} else if src.Len() < 6 {
		return 0, ErrIncomplete
	}
	lo, ok := parseHex4(src.SliceFrom(2))
	if !ok {
		return 0, ErrInvalidHex
	} else if lo < 0xdc00 || lo > 0xdfff {
		return 0, errNotSurrogate
	}
	return lo, nil
}

// appendWobbly appends the generalized UTF-8 encoding of a surrogate code
// point, which utf8.AppendRune would replace.
func appendWobbly(dst []byte, r rune) []byte {
	return append(dst, 0xe0|byte(r>>12), 0x80|byte(r>>6)&0x3f, 0x80|byte(r)&0x3f)
}

// indexSpecial returns the offset of the first backslash or control byte in
// src, or -1.
func indexSpecial(src mem.RO) int {
	for i := 0; i < src.Len(); i++ {
		if b := src.At(i); b == '\\' || b < ' ' {
			return i
		}
	}
	return -1
}

func parseHex4(data mem.RO) (rune, bool) {
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += rune(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += rune(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += rune(b - 'A' + 10)
		} else {
			return 0, false
		}
	}
	return v, true
}

// NeedsDecode reports whether src contains an escape or a control byte, so
// that its decoding differs from its raw text.
func NeedsDecode(src mem.RO) bool { return indexSpecial(src) >= 0 }
