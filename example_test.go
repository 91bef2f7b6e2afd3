// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand_test

import (
	"fmt"
	"log"

	"github.com/creachadair/ondemand"
)

const exampleInput = `{
  "plaintiff": "Inigo Montoya",
  "complaint": {
     "defendant": "you",
     "action": "killed",
     "target": "Individual 1"
  },
  "requestedRelief": ["die", "pay punitive damages", "pay attorney fees"],
  "damages": 1500000,
  "settled": false
}`

func Example() {
	doc, err := ondemand.Iterate([]byte(exampleInput))
	if err != nil {
		log.Fatalf("Iterate: %v", err)
	}
	root := doc.Root()

	name, err := root.FindField("plaintiff").GetString(false)
	if err != nil {
		log.Fatalf("plaintiff: %v", err)
	}
	fmt.Println("plaintiff:", name)

	// Fields requested in document order are found in a single pass.
	complaint := root.FindField("complaint")
	who := ondemand.Must(complaint.FindField("defendant").GetString(false))
	act := ondemand.Must(complaint.FindField("action").GetString(false))
	fmt.Println("complaint:", who, act)

	n := ondemand.Must(root.FindField("damages").GetUint64())
	fmt.Println("damages:", n)
	// Output:
	// plaintiff: Inigo Montoya
	// complaint: you killed
	// damages: 1500000
}

func ExampleArray_All() {
	doc, err := ondemand.Iterate([]byte(exampleInput))
	if err != nil {
		log.Fatalf("Iterate: %v", err)
	}
	relief, err := doc.Root().Field("requestedRelief").GetArray()
	if err != nil {
		log.Fatalf("GetArray: %v", err)
	}
	for v := range relief.All() {
		s, err := v.GetString(false)
		if err != nil {
			log.Fatalf("Element: %v", err)
		}
		fmt.Println(s)
	}
	// Output:
	// die
	// pay punitive damages
	// pay attorney fees
}

func ExampleObject_All() {
	doc, err := ondemand.Iterate([]byte(exampleInput))
	if err != nil {
		log.Fatalf("Iterate: %v", err)
	}
	for f := range ondemand.Must(doc.Root().GetObject()).All() {
		typ, err := f.Value.Type()
		if err != nil {
			log.Fatalf("Type: %v", err)
		}
		fmt.Printf("%s: %v\n", f.Key, typ)
	}
	// Output:
	// plaintiff: string
	// complaint: object
	// requestedRelief: array
	// damages: number
	// settled: boolean
}

func ExampleDocument_AtPointer() {
	doc, err := ondemand.Iterate([]byte(exampleInput))
	if err != nil {
		log.Fatalf("Iterate: %v", err)
	}
	for _, p := range []string{"/complaint/target", "/requestedRelief/1", "/settled"} {
		raw, err := doc.AtPointer(p).RawJSON()
		if err != nil {
			log.Fatalf("AtPointer(%q): %v", p, err)
		}
		fmt.Printf("%s = %s\n", p, raw)
	}
	// Output:
	// /complaint/target = "Individual 1"
	// /requestedRelief/1 = "pay punitive damages"
	// /settled = false
}

func ExampleAndThen() {
	doc, err := ondemand.Iterate([]byte(`{"items": [3, 1, 4, 1, 5]}`))
	if err != nil {
		log.Fatalf("Iterate: %v", err)
	}
	n := ondemand.AndThen(ondemand.Get[ondemand.Array](doc.Root().Field("items")), ondemand.Array.CountElements)
	fmt.Println(n.Or(-1))

	missing := ondemand.AndThen(ondemand.Get[ondemand.Array](doc.Root().Field("nothing")), ondemand.Array.CountElements)
	fmt.Println(missing.Err())
	// Output:
	// 5
	// no such field
}
