package soqltype

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/leapstack-labs/leapsoql/pkg/core"
)

func TestLiteral(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)

	tests := []struct {
		name     string
		value    any
		expected core.Value
	}{
		{"nil", nil, &core.NullLiteral{}},
		{"string", "abc", &core.StringLiteral{Value: "abc"}},
		{"string backslashes are literal", `a\_b`, &core.StringLiteral{Value: `a\\_b`}},
		{"bool", true, &core.BooleanLiteral{Value: true}},
		{"int", 42, &core.NumberLiteral{Text: "42"}},
		{"negative int64", int64(-7), &core.NumberLiteral{Text: "-7"}},
		{"uint8", uint8(255), &core.NumberLiteral{Text: "255"}},
		{"float", 49.99, &core.NumberLiteral{Text: "49.99"}},
		{"whole float", 3.0, &core.NumberLiteral{Text: "3"}},
		{"time", time.Date(2024, 3, 1, 9, 30, 0, 0, berlin), &core.DateTimeLiteral{Text: "2024-03-01T09:30:00+01:00"}},
		{"utc time", time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), &core.DateTimeLiteral{Text: "2024-03-01T09:30:00Z"}},
		{"date", NewDate(2020, time.February, 29), &core.DateLiteral{Text: "2020-02-29"}},
		{"id", ID("001A0000006Vm9r"), &core.StringLiteral{Value: "001A0000006Vm9r"}},
		{"node", &core.DateConstant{Name: "TODAY"}, &core.DateConstant{Name: "TODAY"}},
		{
			"strings",
			[]string{"a", "b"},
			&core.ValueCollection{Values: []core.Value{&core.StringLiteral{Value: "a"}, &core.StringLiteral{Value: "b"}}},
		},
		{
			"mixed",
			[]any{1, "x", nil},
			&core.ValueCollection{Values: []core.Value{&core.NumberLiteral{Text: "1"}, &core.StringLiteral{Value: "x"}, &core.NullLiteral{}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Literal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLiteral_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value any
		err   error
	}{
		{"struct", struct{}{}, ErrUnsupportedType},
		{"map", map[string]int{}, ErrUnsupportedType},
		{"nan", math.NaN(), ErrInvalidNumber},
		{"inf", math.Inf(1), ErrInvalidNumber},
		{"empty list", []string{}, ErrEmptyList},
		{"nested list", []any{[]int{1}}, ErrUnsupportedType},
		{"bad element", []any{1, struct{}{}}, ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Literal(tt.value)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCurrency(t *testing.T) {
	c, err := ParseCurrency("USD49.99")
	require.NoError(t, err)
	assert.Equal(t, "USD", c.Code())
	assert.Equal(t, "49.99", c.Amount)
	assert.Equal(t, "USD49.99", c.String())
	assert.Equal(t, &core.CurrencyLiteral{Code: "USD", Amount: "49.99"}, c.Literal())

	f, err := c.Float()
	require.NoError(t, err)
	assert.InDelta(t, 49.99, f, 1e-9)

	_, err = ParseCurrency("usd49.99")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
	_, err = ParseCurrency("XYZ10")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	n, err := NewCurrency("EUR", 10.5)
	require.NoError(t, err)
	assert.Equal(t, "EUR10.50", n.String())

	n, err = NewCurrency("JPY", 1200)
	require.NoError(t, err)
	assert.Equal(t, "JPY1200", n.String())

	_, err = NewCurrency("EUR", math.Inf(-1))
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestID(t *testing.T) {
	id, err := ParseID("001A0000006Vm9r")
	require.NoError(t, err)
	assert.Equal(t, ID("001A0000006Vm9rIAC"), id.Long())
	assert.Equal(t, id, id.Long().Short())
	assert.True(t, id.Equal("001A0000006Vm9rIAC"))
	assert.False(t, id.Equal("001a0000006Vm9r"))

	assert.Equal(t, ID("001000000000001AAA"), ID("001000000000001").Long())

	long, err := ParseID("001A0000006Vm9riac")
	require.NoError(t, err)
	assert.Equal(t, ID("001A0000006Vm9r"), long.Short())

	for _, bad := range []string{"", "001", "001A0000006Vm9rXXX", "001A0000006Vm9-"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		kind     Kind
		input    string
		expected any
	}{
		{KindString, "", ""},
		{KindString, "abc", "abc"},
		{KindInt, "-12", int64(-12)},
		{KindFloat, "1.5", 1.5},
		{KindBool, "true", true},
		{KindDate, "2024-02-29", NewDate(2024, time.February, 29)},
		{KindCurrency, "GBP7", Currency{Unit: mustUnit(t, "GBP"), Amount: "7"}},
		{KindID, "001000000000001", ID("001000000000001")},
		{KindInt, "", nil},
		{KindDateTime, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.input, func(t *testing.T) {
			got, err := Decode(tt.kind, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecode_DateTimeLayouts(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, in := range []string{
		"2024-01-02T03:04:05Z",
		"2024-01-02T03:04:05.000+0000",
		"2024-01-02T04:04:05+01:00",
	} {
		got, err := Decode(KindDateTime, in)
		require.NoError(t, err, in)
		dt, ok := got.(DateTime)
		require.True(t, ok)
		assert.True(t, want.Equal(dt.Time), in)
	}

	_, err := Decode(KindDateTime, "2024-01-02")
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(KindInt, "1.5")
	assert.ErrorIs(t, err, ErrInvalidNumber)
	_, err = Decode(KindDate, "2024-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = Decode(Kind(99), "x")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDecodeRecord(t *testing.T) {
	rec, err := DecodeRecord(
		map[string]string{"Id": "001000000000001", "Amount": "10.5", "Name": "Acme"},
		map[string]Kind{"Id": KindID, "Amount": KindFloat},
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Id": ID("001000000000001"), "Amount": 10.5, "Name": "Acme"}, rec)

	_, err = DecodeRecord(map[string]string{"Amount": "x"}, map[string]Kind{"Amount": KindFloat})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field Amount")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" DateTime ")
	require.NoError(t, err)
	assert.Equal(t, KindDateTime, k)

	_, err = ParseKind("blob")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func mustUnit(t *testing.T, code string) currency.Unit {
	t.Helper()
	u, err := currency.ParseISO(code)
	require.NoError(t, err)
	return u
}
