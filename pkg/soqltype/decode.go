package soqltype

import (
	"fmt"
	"strconv"
)

// Decode converts a record field's text into the Go value for kind k:
// string, int64, float64, bool, Date, DateTime, Currency or ID. An empty
// string decodes to nil for every kind except KindString.
func Decode(k Kind, s string) (any, error) {
	if s == "" && k != KindString {
		return nil, nil
	}
	switch k {
	case KindString:
		return s, nil
	case KindInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidNumber, s)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidNumber, s)
		}
		return f, nil
	case KindBool:
		return strconv.ParseBool(s)
	case KindDate:
		return ParseDate(s)
	case KindDateTime:
		return ParseDateTime(s)
	case KindCurrency:
		return ParseCurrency(s)
	case KindID:
		return ParseID(s)
	}
	return nil, fmt.Errorf("%w %s", ErrUnknownKind, k)
}

// DecodeRecord decodes every field of rec named in kinds. Fields missing
// from kinds are kept as text.
func DecodeRecord(rec map[string]string, kinds map[string]Kind) (map[string]any, error) {
	out := make(map[string]any, len(rec))
	for name, text := range rec {
		k, ok := kinds[name]
		if !ok {
			out[name] = text
			continue
		}
		v, err := Decode(k, text)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}
