package soqltype

import (
	"fmt"

	"github.com/leapstack-labs/leapsoql/pkg/core"
)

const (
	idShort = 15
	idLong  = 18

	checksumAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345"
)

// ID is a record identifier: 15 case-sensitive characters, or 18 with a
// case-insensitive checksum suffix.
type ID string

// ParseID validates s as a 15 or 18 character identifier.
func ParseID(s string) (ID, error) {
	if len(s) != idShort && len(s) != idLong {
		return "", fmt.Errorf("%w %q: length must be 15 or 18", ErrInvalidID, s)
	}
	for i := 0; i < len(s); i++ {
		if !isAlnum(s[i]) {
			return "", fmt.Errorf("%w %q: unexpected character %q", ErrInvalidID, s, s[i])
		}
	}
	if len(s) == idLong && checksum(s[:idShort]) != upper(s[idShort:]) {
		return "", fmt.Errorf("%w %q: checksum mismatch", ErrInvalidID, s)
	}
	return ID(s), nil
}

// Long returns the 18 character form. IDs of other lengths are returned
// unchanged.
func (id ID) Long() ID {
	if len(id) != idShort {
		return id
	}
	return id + ID(checksum(string(id)))
}

// Short returns the 15 character form.
func (id ID) Short() ID {
	if len(id) == idLong {
		return id[:idShort]
	}
	return id
}

// Equal compares two identifiers regardless of their form.
func (id ID) Equal(other ID) bool {
	return id.Short() == other.Short()
}

// Literal returns the identifier as a quoted string literal.
func (id ID) Literal() core.Value {
	return &core.StringLiteral{Value: string(id)}
}

// checksum computes the three suffix characters of a 15 character id. Each
// suffix character encodes which of five source characters are uppercase.
func checksum(short string) string {
	var suffix [3]byte
	for i := range suffix {
		flags := 0
		for j := 0; j < 5; j++ {
			c := short[i*5+j]
			if 'A' <= c && c <= 'Z' {
				flags |= 1 << j
			}
		}
		suffix[i] = checksumAlphabet[flags]
	}
	return string(suffix[:])
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
