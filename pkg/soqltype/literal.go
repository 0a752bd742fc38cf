package soqltype

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/leapsoql/pkg/core"
)

// Literaler is implemented by values that know their own literal form.
type Literaler interface {
	Literal() core.Value
}

// Literal converts a Go value to a literal node. Supported values are nil,
// strings, booleans, integers, floats, time.Time (as a datetime), the kinds
// of this package, core.Value nodes (copied), and slices of those (as value
// lists).
func Literal(v any) (core.Value, error) {
	switch val := v.(type) {
	case nil:
		return &core.NullLiteral{}, nil
	case core.Value:
		return core.CloneValue(val), nil
	case Literaler:
		return val.Literal(), nil
	case string:
		return stringLiteral(val), nil
	case bool:
		return &core.BooleanLiteral{Value: val}, nil
	case int:
		return intLiteral(int64(val)), nil
	case int8:
		return intLiteral(int64(val)), nil
	case int16:
		return intLiteral(int64(val)), nil
	case int32:
		return intLiteral(int64(val)), nil
	case int64:
		return intLiteral(val), nil
	case uint:
		return uintLiteral(uint64(val)), nil
	case uint8:
		return uintLiteral(uint64(val)), nil
	case uint16:
		return uintLiteral(uint64(val)), nil
	case uint32:
		return uintLiteral(uint64(val)), nil
	case uint64:
		return uintLiteral(val), nil
	case float32:
		return floatLiteral(float64(val), 32)
	case float64:
		return floatLiteral(val, 64)
	case time.Time:
		return DateTime{val}.Literal(), nil
	case []any:
		return listLiteral(val)
	case []string:
		return listLiteral(val)
	case []int:
		return listLiteral(val)
	case []int64:
		return listLiteral(val)
	case []float64:
		return listLiteral(val)
	case []bool:
		return listLiteral(val)
	case []ID:
		return listLiteral(val)
	case []Date:
		return listLiteral(val)
	case []time.Time:
		return listLiteral(val)
	}
	return nil, fmt.Errorf("%w %T", ErrUnsupportedType, v)
}

func intLiteral(n int64) core.Value {
	return &core.NumberLiteral{Text: strconv.FormatInt(n, 10)}
}

func uintLiteral(n uint64) core.Value {
	return &core.NumberLiteral{Text: strconv.FormatUint(n, 10)}
}

func floatLiteral(f float64, bits int) (core.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, f)
	}
	return &core.NumberLiteral{Text: strconv.FormatFloat(f, 'f', -1, bits)}, nil
}

func listLiteral[T any](items []T) (core.Value, error) {
	if len(items) == 0 {
		return nil, ErrEmptyList
	}
	coll := &core.ValueCollection{Values: make([]core.Value, 0, len(items))}
	for i, item := range items {
		v, err := Literal(item)
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		if _, nested := v.(*core.ValueCollection); nested {
			return nil, fmt.Errorf("list element %d: %w nested list", i, ErrUnsupportedType)
		}
		coll.Values = append(coll.Values, v)
	}
	return coll, nil
}

// stringLiteral treats s as plain text: every backslash is literal.
func stringLiteral(s string) *core.StringLiteral {
	return &core.StringLiteral{Value: strings.ReplaceAll(s, `\`, `\\`)}
}
