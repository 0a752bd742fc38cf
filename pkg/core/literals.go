package core

import (
	"regexp"
	"strings"
)

// dateConstants are the relative date names accepted as bare values.
var dateConstants = []string{
	"YESTERDAY", "TODAY", "TOMORROW",
	"LAST_WEEK", "THIS_WEEK", "NEXT_WEEK",
	"LAST_MONTH", "THIS_MONTH", "NEXT_MONTH",
	"LAST_90_DAYS", "NEXT_90_DAYS",
	"THIS_QUARTER", "LAST_QUARTER", "NEXT_QUARTER",
	"THIS_YEAR", "LAST_YEAR", "NEXT_YEAR",
	"THIS_FISCAL_QUARTER", "LAST_FISCAL_QUARTER", "NEXT_FISCAL_QUARTER",
	"THIS_FISCAL_YEAR", "LAST_FISCAL_YEAR", "NEXT_FISCAL_YEAR",
}

// dateFormulas are the relative date ranges that require a :N suffix.
var dateFormulas = []string{
	"LAST_N_DAYS", "NEXT_N_DAYS",
	"LAST_N_WEEKS", "NEXT_N_WEEKS",
	"LAST_N_MONTHS", "NEXT_N_MONTHS",
	"LAST_N_QUARTERS", "NEXT_N_QUARTERS",
	"LAST_N_YEARS", "NEXT_N_YEARS",
	"LAST_N_FISCAL_QUARTERS", "NEXT_N_FISCAL_QUARTERS",
	"LAST_N_FISCAL_YEARS", "NEXT_N_FISCAL_YEARS",
}

var (
	dateConstantSet = toSet(dateConstants)
	dateFormulaSet  = toSet(dateFormulas)
	currencyPattern = regexp.MustCompile(`^([A-Z]{3})(\d+(?:\.\d+)?)$`)
)

func toSet(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// DateConstants returns the relative date constant vocabulary.
func DateConstants() []string {
	return append([]string(nil), dateConstants...)
}

// DateFormulas returns the date formula vocabulary.
func DateFormulas() []string {
	return append([]string(nil), dateFormulas...)
}

// IsDateConstant reports whether name (any case) is a date constant.
func IsDateConstant(name string) bool {
	_, ok := dateConstantSet[strings.ToUpper(name)]
	return ok
}

// IsDateFormula reports whether name (any case) is a date formula.
func IsDateFormula(name string) bool {
	_, ok := dateFormulaSet[strings.ToUpper(name)]
	return ok
}

// SplitCurrency splits a currency literal such as USD49.99 into its code
// and amount. The code must be exactly three uppercase letters.
func SplitCurrency(text string) (code, amount string, ok bool) {
	m := currencyPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
