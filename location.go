// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ondemand

import (
	"bytes"
	"fmt"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of s in bytes.
func (s Span) Len() int { return s.End - s.Pos }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%d:%d-%d", loc.First.Line, loc.First.Column, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}

// locate computes the line and column offsets of span within data.
// Offsets outside data are clamped to its bounds.
func locate(data []byte, span Span) Location {
	pos := min(max(span.Pos, 0), len(data))
	end := min(max(span.End, pos), len(data))
	return Location{
		Span:  Span{Pos: pos, End: end},
		First: lineCol(data, pos),
		Last:  lineCol(data, end),
	}
}

func lineCol(data []byte, off int) LineCol {
	head := data[:off]
	col := off
	if i := bytes.LastIndexByte(head, '\n'); i >= 0 {
		col = off - i - 1
	}
	return LineCol{Line: bytes.Count(head, []byte("\n")) + 1, Column: col}
}

// offsetOf returns the offset in data of the given line and column, the
// inverse of lineCol. The result is clamped to the bounds of data.
func offsetOf(data []byte, line, col int) int {
	off := 0
	for ; line > 1; line-- {
		i := bytes.IndexByte(data[off:], '\n')
		if i < 0 {
			return len(data)
		}
		off += i + 1
	}
	return min(off+max(col, 0), len(data))
}
