// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"errors"
	"strings"

	"github.com/creachadair/ondemand/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.AppendQuote(nil, mem.S(src))) }

// AppendQuote appends the JSON string encoding of src to dst and returns the
// extended slice.
func AppendQuote(dst []byte, src string) []byte { return escape.AppendQuote(dst, mem.S(src)) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Unquote reports an error for an invalid or incomplete escape sequence, an
// unescaped control character, or an unpaired surrogate escape.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Decode(nil, mem.S(src[1:len(src)-1]), escape.Strict)
}
