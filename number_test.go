// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"math"
	"testing"
)

func TestCheckNumber(t *testing.T) {
	tests := []struct {
		input    string
		ok       bool
		integral bool
	}{
		{"0", true, true},
		{"-0", true, true},
		{"12345", true, true},
		{"-9", true, true},
		{"1.5", true, false},
		{"0.25", true, false},
		{"1e5", true, false},
		{"1E+5", true, false},
		{"-2.5e-3", true, false},

		{"", false, false},
		{"-", false, false},
		{"01", false, false},
		{"-01", false, false},
		{"1.", false, false},
		{".5", false, false},
		{"1e", false, false},
		{"1e+", false, false},
		{"+1", false, false},
		{"1x", false, false},
		{"0x10", false, false},
		{"1.2.3", false, false},
		{"NaN", false, false},
		{"Infinity", false, false},
	}
	for _, tc := range tests {
		sh, err := checkNumber([]byte(tc.input))
		if ok := err == nil; ok != tc.ok {
			t.Errorf("checkNumber(%q): got err=%v, want ok=%v", tc.input, err, tc.ok)
			continue
		}
		if tc.ok && sh.integral != tc.integral {
			t.Errorf("checkNumber(%q): got integral=%v, want %v", tc.input, sh.integral, tc.integral)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		typ   NumberType
		want  string
	}{
		{"0", SignedInteger, "0"},
		{"-0", SignedInteger, "0"},
		{"9223372036854775807", SignedInteger, "9223372036854775807"},
		{"-9223372036854775808", SignedInteger, "-9223372036854775808"},
		{"9223372036854775808", UnsignedInteger, "9223372036854775808"},
		{"18446744073709551615", UnsignedInteger, "18446744073709551615"},
		{"18446744073709551616", FloatingPoint, "1.8446744073709552e+19"},
		{"-9223372036854775809", FloatingPoint, "-9.223372036854776e+18"},
		{"1.5", FloatingPoint, "1.5"},
		{"1e2", FloatingPoint, "100"},
		{"-2.5E-3", FloatingPoint, "-0.0025"},
		{"1e-400", FloatingPoint, "0"},
	}
	for _, tc := range tests {
		n, err := parseNumber([]byte(tc.input))
		if err != nil {
			t.Errorf("parseNumber(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if n.Type() != tc.typ {
			t.Errorf("parseNumber(%q): got type %v, want %v", tc.input, n.Type(), tc.typ)
		}
		if got := n.String(); got != tc.want {
			t.Errorf("parseNumber(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}

	if _, err := parseNumber([]byte("1e400")); err != NumberError {
		t.Errorf("parseNumber(1e400): got %v, want %v", err, NumberError)
	}
}

func TestParseIntegers(t *testing.T) {
	t.Run("Int64", func(t *testing.T) {
		tests := []struct {
			input string
			want  int64
			err   error
		}{
			{"0", 0, nil},
			{"-17", -17, nil},
			{"9223372036854775807", math.MaxInt64, nil},
			{"-9223372036854775808", math.MinInt64, nil},
			{"9223372036854775808", 0, NumberOutOfRange},
			{"1.0", 0, IncorrectType},
			{"1e3", 0, IncorrectType},
			{"01", 0, NumberError},
		}
		for _, tc := range tests {
			got, err := parseInt64([]byte(tc.input))
			if err != tc.err || got != tc.want {
				t.Errorf("parseInt64(%q): got (%d, %v), want (%d, %v)", tc.input, got, err, tc.want, tc.err)
			}
		}
	})
	t.Run("Uint64", func(t *testing.T) {
		tests := []struct {
			input string
			want  uint64
			err   error
		}{
			{"0", 0, nil},
			{"-0", 0, nil},
			{"18446744073709551615", math.MaxUint64, nil},
			{"18446744073709551616", 0, NumberOutOfRange},
			{"-1", 0, NumberOutOfRange},
			{"2.5", 0, IncorrectType},
			{"-", 0, NumberError},
		}
		for _, tc := range tests {
			got, err := parseUint64([]byte(tc.input))
			if err != tc.err || got != tc.want {
				t.Errorf("parseUint64(%q): got (%d, %v), want (%d, %v)", tc.input, got, err, tc.want, tc.err)
			}
		}
	})
	t.Run("IsInteger", func(t *testing.T) {
		tests := []struct {
			input string
			want  bool
		}{
			{"0", true},
			{"-5", true},
			{"18446744073709551615", true},
			{"18446744073709551616", false},
			{"-9223372036854775808", true},
			{"-9223372036854775809", false},
			{"1e2", false},
			{"100.0", false},
		}
		for _, tc := range tests {
			got, err := isInteger([]byte(tc.input))
			if err != nil || got != tc.want {
				t.Errorf("isInteger(%q): got (%v, %v), want (%v, nil)", tc.input, got, err, tc.want)
			}
		}
	})
}

func TestNumberConversions(t *testing.T) {
	n, err := parseNumber([]byte("18446744073709551615"))
	if err != nil {
		t.Fatalf("parseNumber: %v", err)
	}
	if !n.IsUint64() || n.IsInt64() || n.IsFloat64() {
		t.Errorf("Number %v: wrong type predicates for %v", n, n.Type())
	}
	if got := n.Uint64(); got != math.MaxUint64 {
		t.Errorf("Uint64: got %d, want %d", got, uint64(math.MaxUint64))
	}
	if got := n.Float64(); got != 1.8446744073709552e19 {
		t.Errorf("Float64: got %g", got)
	}

	f, err := parseNumber([]byte("-3.75"))
	if err != nil {
		t.Fatalf("parseNumber: %v", err)
	}
	if got := f.Int64(); got != -3 {
		t.Errorf("Int64 of %v: got %d, want -3", f, got)
	}
}
