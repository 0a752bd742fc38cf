package soqltype

import "errors"

// Sentinel errors. Conversion functions wrap them with the offending value.
var (
	ErrUnsupportedType = errors.New("unsupported value type")
	ErrUnknownKind     = errors.New("unknown value kind")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidDateTime = errors.New("invalid datetime")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrEmptyList       = errors.New("empty value list")
)
