// Package soqltype converts Go values to query literals and decodes
// record values back into Go values.
//
// Conversion is explicit per kind. Literal switches over a fixed set of
// Go types and Decode switches over Kind; neither inspects values through
// reflection.
package soqltype

import (
	"fmt"
	"strings"
)

// Kind enumerates the value kinds a record field can be decoded into.
type Kind int

// Kind constants.
const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDate
	KindDateTime
	KindCurrency
	KindID
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindCurrency: "currency",
	KindID:       "id",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind from its name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == lower {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
