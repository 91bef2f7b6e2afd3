// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

// Decode decodes input with a reference JSON decoder. Numbers are reported
// as json.Number values, so that their text is preserved for comparison.
func Decode(tb testing.TB, input []byte) any {
	tb.Helper()
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		tb.Fatalf("Reference decode failed: %v", err)
	}
	return v
}

// Encode encodes v as JSON with the reference encoder.
func Encode(tb testing.TB, v any) []byte {
	tb.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		tb.Fatalf("Reference encode failed: %v", err)
	}
	return data
}

// RandomValue constructs a pseudo-random JSON value with nesting up to the
// specified depth, suitable for encoding with Encode. Numbers are json.Number
// values, and object keys within an object are distinct.
func RandomValue(r *rand.Rand, depth int) any {
	k := r.IntN(8)
	if depth <= 0 {
		k %= 5 // scalars only
	}
	switch k {
	case 0:
		return nil
	case 1:
		return r.IntN(2) == 0
	case 2:
		return randomNumber(r)
	case 3, 4:
		return randomString(r)
	case 5:
		out := make([]any, r.IntN(5))
		for i := range out {
			out[i] = RandomValue(r, depth-1)
		}
		return out
	default:
		out := make(map[string]any)
		for range r.IntN(5) {
			out[randomString(r)] = RandomValue(r, depth-1)
		}
		return out
	}
}

func randomNumber(r *rand.Rand) json.Number {
	switch r.IntN(4) {
	case 0:
		return json.Number(fmt.Sprint(r.Int64()))
	case 1:
		return json.Number(fmt.Sprint(-r.Int64N(1 << 40)))
	case 2:
		return json.Number(fmt.Sprint(r.Uint64()))
	default:
		return json.Number(fmt.Sprintf("%g", r.NormFloat64()*1e6))
	}
}

const alphabet = "abcdefghijklmnopqrstuvwxyz_ \"\\/\t\né世\U0001f600"

func randomString(r *rand.Rand) string {
	runes := []rune(alphabet)
	var buf strings.Builder
	for range r.IntN(10) {
		buf.WriteRune(runes[r.IntN(len(runes))])
	}
	return buf.String()
}
