// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand_test

import (
	"testing"

	"github.com/creachadair/ondemand"
	"github.com/google/go-cmp/cmp"
)

func TestArrayIteration(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`[]`, nil},
		{`[ ]`, nil},
		{`[1]`, []string{`1`}},
		{`[1, "two", null, true]`, []string{`1`, `"two"`, `null`, `true`}},
		{`[[], [[]], {}]`, []string{`[`, `[`, `{`}},
	}
	for _, tc := range tests {
		arr, err := mustIterate(t, tc.input).Root().GetArray()
		if err != nil {
			t.Fatalf("GetArray(%#q): %v", tc.input, err)
		}
		var got []string
		it := arr.Iter()
		for it.Next() {
			if it.Index() != len(got) {
				t.Errorf("Index: got %d, want %d", it.Index(), len(got))
			}
			got = append(got, string(it.Value().RawJSONToken()))
		}
		if err := it.Err(); err != nil {
			t.Errorf("Iteration of %#q failed: %v", tc.input, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Elements of %#q (-want, +got):\n%s", tc.input, diff)
		}
		if arr.IsEmpty() != (len(tc.want) == 0) {
			t.Errorf("IsEmpty(%#q): got %v", tc.input, arr.IsEmpty())
		}
		// The iterator is not restartable.
		if it.Next() {
			t.Errorf("Next after end of %#q reported true", tc.input)
		}
	}
}

func TestArraySkipsUnread(t *testing.T) {
	const input = `[{"a": [1, 2, {"b": 3}]}, [4, [5]], 6]`
	doc := mustIterate(t, input)
	arr := ondemand.Must(doc.Root().GetArray())

	it := arr.Iter()
	if !it.Next() {
		t.Fatalf("Next: %v", it.Err())
	}
	// Partly consume the first element, leaving the cursor deep inside it.
	if n, err := it.Value().Field("a").At(0).GetInt64(); err != nil || n != 1 {
		t.Fatalf("Nested read: got (%d, %v), want (1, nil)", n, err)
	}
	if !it.Next() {
		t.Fatalf("Next: %v", it.Err())
	}
	// Enter the second element but read nothing.
	if _, err := it.Value().GetArray(); err != nil {
		t.Fatalf("GetArray: %v", err)
	}
	if !it.Next() {
		t.Fatalf("Next: %v", it.Err())
	}
	if n, err := it.Value().GetInt64(); err != nil || n != 6 {
		t.Errorf("Last element: got (%d, %v), want (6, nil)", n, err)
	}
	if it.Next() {
		t.Error("Next reported an extra element")
	}
	if err := it.Err(); err != nil {
		t.Errorf("Iteration failed: %v", err)
	}
	if !doc.AtEnd() {
		t.Error("Document not consumed")
	}
}

func TestArrayAt(t *testing.T) {
	const input = `[10, 20, [30], 40]`
	for i, want := range []string{`10`, `20`, `[30]`, `40`} {
		raw, err := mustIterate(t, input).Root().At(i).RawJSON()
		if err != nil {
			t.Errorf("At(%d): unexpected error: %v", i, err)
		} else if string(raw) != want {
			t.Errorf("At(%d): got %#q, want %#q", i, raw, want)
		}
	}
	for _, i := range []int{-1, 4, 100} {
		err := mustIterate(t, input).Root().At(i).Err()
		checkErr(t, "At", err, ondemand.IndexOutOfBounds)
	}
	checkErr(t, "At on empty", mustIterate(t, `[]`).Root().At(0).Err(), ondemand.IndexOutOfBounds)

	// At scans from the first element, so a second lookup on the same array
	// handle, once the cursor has moved, is out of order.
	arr := ondemand.Must(mustIterate(t, input).Root().GetArray())
	if n, err := arr.At(1).GetInt64(); err != nil || n != 20 {
		t.Fatalf("At(1): got (%d, %v), want (20, nil)", n, err)
	}
	checkErr(t, "Second At", arr.At(0).Err(), ondemand.OutOfOrderIteration)
}

func TestArrayCount(t *testing.T) {
	doc := mustIterate(t, `[1, [2, 3], 4]`)
	arr := ondemand.Must(doc.Root().GetArray())
	for range 2 {
		n, err := arr.CountElements()
		if err != nil || n != 3 {
			t.Fatalf("CountElements: got (%d, %v), want (3, nil)", n, err)
		}
	}
	var got []int64
	for v := range arr.All() {
		if typ, _ := v.Type(); typ == ondemand.TypeArray {
			n, err := v.CountElements()
			if err != nil {
				t.Fatalf("Nested CountElements: %v", err)
			}
			got = append(got, int64(-n))
			continue
		}
		got = append(got, ondemand.Must(v.GetInt64()))
	}
	if diff := cmp.Diff([]int64{1, -2, 4}, got); diff != "" {
		t.Errorf("Elements (-want, +got):\n%s", diff)
	}

	// Once the array is exhausted it cannot be counted.
	_, err := arr.CountElements()
	checkErr(t, "Count after iteration", err, ondemand.OutOfOrderIteration)

	empty := ondemand.Must(mustIterate(t, `[]`).Root().GetArray())
	if n, err := empty.CountElements(); err != nil || n != 0 {
		t.Errorf("Empty CountElements: got (%d, %v), want (0, nil)", n, err)
	}
}

func TestArrayAllBreak(t *testing.T) {
	doc := mustIterate(t, `{"list": [1, 2, 3, 4], "after": true}`)
	var sum int64
	for v := range ondemand.Must(doc.Root().Field("list").GetArray()).All() {
		n := ondemand.Must(v.GetInt64())
		if n > 2 {
			break
		}
		sum += n
	}
	if sum != 3 {
		t.Errorf("Sum: got %d, want 3", sum)
	}
	// Abandoning the array leaves the rest of the document reachable.
	if ok, err := doc.Root().Field("after").GetBool(); err != nil || !ok {
		t.Errorf("Field after: got (%v, %v), want (true, nil)", ok, err)
	}
}

func TestArrayRawJSON(t *testing.T) {
	doc := mustIterate(t, `{"a": [1, [2]], "b": []}`)
	raw, err := ondemand.Must(doc.Root().Field("a").GetArray()).RawJSON()
	if err != nil || string(raw) != `[1, [2]]` {
		t.Errorf("RawJSON: got (%#q, %v), want [1, [2]]", raw, err)
	}
	raw, err = ondemand.Must(doc.Root().Field("b").GetArray()).RawJSON()
	if err != nil || string(raw) != `[]` {
		t.Errorf("RawJSON: got (%#q, %v), want []", raw, err)
	}
}

func TestStaleIterator(t *testing.T) {
	doc := mustIterate(t, `[[1, 2], [3]]`)
	outer := ondemand.Must(doc.Root().GetArray())
	first := ondemand.Must(outer.At(0).GetArray())

	// Moving the outer iterator past the first element abandons it.
	it := outer.Iter()
	if !it.Next() {
		t.Fatalf("Next: %v", it.Err())
	} else if got := string(it.Value().RawJSONToken()); got != "[" || it.Index() != 0 {
		t.Errorf("Next: got %#q at %d, want [ at 0", got, it.Index())
	}
	in := first.Iter()
	if in.Next() {
		t.Error("Next on abandoned array reported true")
	}
	checkErr(t, "Abandoned", in.Err(), ondemand.OutOfOrderIteration)
}

func TestValueIteration(t *testing.T) {
	doc := mustIterate(t, `{"list": [1, 2, 3], "s": "x"}`)
	var got []int64
	for v := range doc.Root().Field("list").All() {
		n, err := v.GetInt64()
		if err != nil {
			t.Fatalf("Element: %v", err)
		}
		got = append(got, n)
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, got); diff != "" {
		t.Errorf("All (-want, +got):\n%s", diff)
	}

	it := doc.Root().Field("s").Iter()
	if it.Next() {
		t.Error("Iter on a string: Next reported an element")
	}
	checkErr(t, "Iter on a string", it.Err(), ondemand.IncorrectType)

	var errs []error
	for v := range doc.Root().Field("nothing").All() {
		errs = append(errs, v.Err())
	}
	if len(errs) != 1 {
		t.Fatalf("All on a missing field: got %d values, want 1", len(errs))
	}
	checkErr(t, "All on a missing field", errs[0], ondemand.NoSuchField)
}
