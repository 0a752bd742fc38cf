package soqltype

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/leapsoql/pkg/core"
)

// DateLayout is the literal form of a date.
const DateLayout = time.DateOnly

// DateTimeLayout is the literal form of a datetime. Offsets print as
// +hh:mm, or Z for UTC.
const DateTimeLayout = time.RFC3339

// Layouts accepted when decoding datetime values returned by the API.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
}

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate returns the date y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// Literal returns the date as a query literal.
func (d Date) Literal() core.Value {
	return &core.DateLiteral{Text: d.String()}
}

// DateTime is an instant with its zone offset.
type DateTime struct {
	time.Time
}

// ParseDateTime parses an ISO-8601 datetime. Both +hh:mm and +hhmm offsets
// are accepted, with optional fractional seconds.
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("%w %q", ErrInvalidDateTime, s)
}

func (dt DateTime) String() string {
	return dt.Format(DateTimeLayout)
}

// Literal returns the datetime as a query literal. Sub-second precision is
// dropped.
func (dt DateTime) Literal() core.Value {
	return &core.DateTimeLiteral{Text: dt.String()}
}
