// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ondemand

// Type is the kind of a JSON value. The set of kinds is closed by the JSON
// grammar, so callers can switch over it exhaustively.
type Type byte

// Constants defining the valid Type values.
const (
	TypeInvalid Type = iota // not a valid JSON value
	TypeArray               // [ ... ]
	TypeObject              // { ... }
	TypeString              // "..."
	TypeNumber              // -1.5e3
	TypeBoolean             // true, false
	TypeNull                // null
)

var typeStr = [...]string{
	TypeInvalid: "invalid",
	TypeArray:   "array",
	TypeObject:  "object",
	TypeString:  "string",
	TypeNumber:  "number",
	TypeBoolean: "boolean",
	TypeNull:    "null",
}

func (t Type) String() string {
	if int(t) >= len(typeStr) {
		return typeStr[TypeInvalid]
	}
	return typeStr[t]
}

// IsScalar reports whether t is a kind other than array or object.
func (t Type) IsScalar() bool { return t != TypeArray && t != TypeObject && t != TypeInvalid }

// typeOf classifies a token by its first byte.
func typeOf(b byte) Type {
	switch b {
	case '[':
		return TypeArray
	case '{':
		return TypeObject
	case '"':
		return TypeString
	case 't', 'f':
		return TypeBoolean
	case 'n':
		return TypeNull
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return TypeNumber
	}
	return TypeInvalid
}
