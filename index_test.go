// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildIndex(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`1`, []string{`1`}},
		{` "a b" `, []string{`"a b"`}},
		{`[]`, []string{`[`, `]`}},
		{`{ }`, []string{`{`, `}`}},
		{`[1, [true], {"x": null}]`, []string{
			`[`, `1`, `,`, `[`, `true`, `]`, `,`, `{`, `"x"`, `:`, `null`, `}`, `]`,
		}},

		// Scalars are not checked until they are accessed.
		{`[01, tru, "\x"]`, []string{`[`, `01`, `,`, `tru`, `,`, `"\x"`, `]`}},
	}
	for _, tc := range tests {
		spans, err := buildIndex([]byte(tc.input), nil, DefaultMaxDepth)
		if err != nil {
			t.Errorf("buildIndex(%#q): unexpected error: %v", tc.input, err)
			continue
		}
		var got []string
		for _, s := range spans {
			got = append(got, tc.input[s.Pos:s.End])
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("buildIndex(%#q) tokens (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestBuildIndexErrors(t *testing.T) {
	tests := []struct {
		input  string
		code   ErrorCode
		offset int
	}{
		{``, Empty, 0},
		{"  \n\t ", Empty, 5},
		{`1 2`, TrailingContent, 2},
		{`{} x`, TapeError, 3},
		{`[1, 2`, TapeError, 5},
		{`[1 2]`, TapeError, 3},
		{`[1,]`, TapeError, 3},
		{`{"a":}`, TapeError, 5},
		{`{"a" 1}`, TapeError, 5},
		{`{1: 2}`, TapeError, 1},
		{`{"a": 1,}`, TapeError, 8},
		{`]`, TapeError, 0},
		{`:`, TapeError, 0},
		{`"abc`, UnclosedString, 0},
		{"[\"\xff\"]", UTF8Error, 0},
	}
	for _, tc := range tests {
		_, err := buildIndex([]byte(tc.input), nil, DefaultMaxDepth)
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("buildIndex(%#q): got %v, want *SyntaxError", tc.input, err)
			continue
		}
		if serr.Code != tc.code || serr.Offset != tc.offset {
			t.Errorf("buildIndex(%#q): got %v at %d, want %v at %d",
				tc.input, serr.Code, serr.Offset, tc.code, tc.offset)
		}
	}
}

func TestBuildIndexDepth(t *testing.T) {
	nest := func(n int) []byte {
		return []byte(strings.Repeat("[", n) + strings.Repeat("]", n))
	}
	if _, err := buildIndex(nest(5), nil, 5); err != nil {
		t.Errorf("Depth 5 with max 5: unexpected error: %v", err)
	}
	if _, err := buildIndex(nest(6), nil, 5); CodeOf(err) != DepthError {
		t.Errorf("Depth 6 with max 5: got %v, want %v", err, DepthError)
	}
	if _, err := buildIndex(nest(DefaultMaxDepth+1), nil, DefaultMaxDepth); CodeOf(err) != DepthError {
		t.Errorf("Default depth exceeded: got %v, want %v", err, DepthError)
	}
}

func TestLocation(t *testing.T) {
	const input = "{\n  \"a\": [1,\n    2]\n}"
	tests := []struct {
		span Span
		want string
	}{
		{Span{0, 1}, "1:0-1"},
		{Span{4, 7}, "2:2-5"},
		{Span{9, 19}, "2:7-3:6"},
		{Span{100, 200}, "4:1-1"}, // clamped
	}
	for _, tc := range tests {
		if got := locate([]byte(input), tc.span).String(); got != tc.want {
			t.Errorf("locate(%v): got %q, want %q", tc.span, got, tc.want)
		}
	}
}

func TestOffsetOf(t *testing.T) {
	const input = "{\n  \"a\": [1,\n    2]\n}"
	for off := range len(input) + 1 {
		lc := lineCol([]byte(input), off)
		if got := offsetOf([]byte(input), lc.Line, lc.Column); got != off {
			t.Errorf("offsetOf(%v): got %d, want %d", lc, got, off)
		}
	}
	if got := offsetOf([]byte(input), 10, 0); got != len(input) {
		t.Errorf("offsetOf(10:0): got %d, want %d", got, len(input))
	}
}
