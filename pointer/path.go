// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package pointer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

/*
Grammar of the JSONPath expressions recognized by FromPath:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = DQNAME
 value = INDEX
 value = slice
 value = filter
 slice = [INDEX] ":" [INDEX]
filter = "?(" TEXT ")"
filter = "(" TEXT ")"

  WORD = RE `\w+`
 QTEXT = RE `[^']*`
DQNAME = RE `"[^"]*"`
 INDEX = RE `-?\d+(,-?\d+)*`
  TEXT = { all text with nested parentheses }

Only a path that names exactly one value can be converted: recursion,
wildcards, slices, unions, negative indices, and filters are parsed so
that they can be reported precisely, but are rejected.
*/

// FromPath converts the JSONPath expression path to an equivalent JSON
// Pointer. The supported steps are ".name", "['name']", "[\"name\"]", and
// "[n]" for a non-negative integer n. Expressions that are syntactically
// valid but may select more than one value report ErrUnsupportedPath.
func FromPath(path string) (string, error) {
	steps, err := parsePath(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPointer, err)
	}
	var buf strings.Builder
	for _, s := range steps {
		switch s.op {
		case opMember, opQName:
			buf.WriteByte('/')
			buf.WriteString(Escape(s.arg))
		case opIndex:
			if strings.HasPrefix(s.arg, "-") || strings.Contains(s.arg, ",") {
				return "", fmt.Errorf("%w: index %q", ErrUnsupportedPath, s.arg)
			}
			buf.WriteByte('/')
			buf.WriteString(strings.TrimLeft(s.arg[:len(s.arg)-1], "0") + s.arg[len(s.arg)-1:])
		default:
			return "", fmt.Errorf("%w: %v step", ErrUnsupportedPath, s.op)
		}
	}
	return buf.String(), nil
}

// A step is a single step of a JSONPath expression.
type step struct {
	op  op
	arg string
}

// An op is a path operator.
type op byte

const (
	opInvalid  op = iota // invalid operator
	opMember             // member lookup (.name)
	opQName              // quoted member lookup (['name'])
	opIndex              // array index lookup ([n])
	opSlice              // array slice ([a:b])
	opWildcard           // wildcard expansion (*)
	opRecur              // recursive descent (..)
	opFilter             // filter or script ([?(...)], [(...)])
)

var opText = [...]string{
	opInvalid:  "invalid",
	opMember:   "member",
	opQName:    "quoted member",
	opIndex:    "index",
	opSlice:    "slice",
	opWildcard: "wildcard",
	opRecur:    "recursive descent",
	opFilter:   "filter",
}

func (o op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return opText[opInvalid]
}

func parsePath(s string) ([]step, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps []step
	for t != "" {
		st, rest, err := parseStep(t)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
		t = rest
	}
	return steps, nil
}

func parseStep(s string) (_ step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		_, name, u, err := parseName(t)
		if err != nil {
			return step{}, s, fmt.Errorf("invalid ..name: %w", err)
		}
		return step{op: opRecur, arg: name}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		kind, name, u, err := parseName(t)
		if err != nil {
			return step{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		if kind == opQName {
			kind = opMember
		}
		return step{op: kind, arg: name}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		kind, val, u, err := parseValue(t)
		if err != nil {
			return step{}, t, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return step{}, u, errors.New("missing close bracket")
		}
		return step{op: kind, arg: val}, u, nil
	}
	return step{}, s, fmt.Errorf("invalid path step %q", s)
}

func parseName(s string) (kind op, name, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return opWildcard, "*", t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return opMember, m[1], s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return opQName, m[1], s[len(m[0]):], nil
	}
	return opInvalid, "", s, errors.New("invalid name")
}

func parseIndex(s string) (text, rest string, ok bool) {
	if m := indexRE.FindStringSubmatch(s); m != nil {
		return m[1], s[len(m[0]):], true
	}
	return "", s, false
}

func parseValue(s string) (kind op, value, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "?("); ok {
		text, rest, err := parseScript(t)
		return opFilter, text, rest, err
	}
	if t, ok := strings.CutPrefix(s, "("); ok {
		text, rest, err := parseScript(t)
		return opFilter, text, rest, err
	}
	if text, rest, ok := parseIndex(s); ok {
		if u, ok := strings.CutPrefix(rest, ":"); ok {
			hi, u, _ := parseIndex(u)
			return opSlice, text + ":" + hi, u, nil
		}
		return opIndex, text, rest, nil
	}
	if u, ok := strings.CutPrefix(s, ":"); ok {
		hi, u, _ := parseIndex(u)
		return opSlice, ":" + hi, u, nil
	}
	if m := dquoteRE.FindStringSubmatch(s); m != nil {
		return opQName, m[1], s[len(m[0]):], nil
	}
	if kind, text, rest, err := parseName(s); err == nil {
		if kind == opMember {
			kind = opQName
		}
		return kind, text, rest, nil
	}
	return opInvalid, "", s, fmt.Errorf("invalid value: %q", s)
}

func parseScript(s string) (text, rest string, _ error) {
	i, np := 0, 1
	for i < len(s) {
		if s[i] == ')' {
			np--
			if np == 0 {
				break
			}
		} else if s[i] == '(' {
			np++
		}
		i++
	}
	if np > 0 {
		return "", s, errors.New("unbalanced parentheses")
	}
	return s[:i], s[i+1:], nil
}

var (
	wordRE   = regexp.MustCompile(`^(\w+)`)
	indexRE  = regexp.MustCompile(`^(-?\d+(?:,-?\d+)*)`)
	quoteRE  = regexp.MustCompile(`^'([^']*)'`)
	dquoteRE = regexp.MustCompile(`^"([^"]*)"`)
)
