package core

import (
	"sort"
	"strings"
)

// Clause is a bit set of the clause contexts a function may appear in.
type Clause uint8

// Clause contexts.
const (
	ClauseSelect Clause = 1 << iota
	ClauseWhere
	ClauseGroupBy
	ClauseHaving
	ClauseOrderBy
	// ClauseDateArg is the argument position of a date function.
	ClauseDateArg
)

var clauseNames = []struct {
	c    Clause
	name string
}{
	{ClauseSelect, "SELECT"},
	{ClauseWhere, "WHERE"},
	{ClauseGroupBy, "GROUP BY"},
	{ClauseHaving, "HAVING"},
	{ClauseOrderBy, "ORDER BY"},
	{ClauseDateArg, "date function argument"},
}

func (c Clause) String() string {
	var parts []string
	for _, n := range clauseNames {
		if c&n.c != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// FunctionKind groups functions by family.
type FunctionKind int

// FunctionKind constants.
const (
	FuncAggregate FunctionKind = iota
	FuncDate
	FuncGeo
	FuncSelect
	FuncTimezone
)

// Function describes a whitelisted function.
type Function struct {
	Name    string // canonical uppercase name
	Kind    FunctionKind
	Clauses Clause
	MinArgs int
	MaxArgs int
}

// Allowed reports whether the function may be called in clause c.
func (f Function) Allowed(c Clause) bool {
	return f.Clauses&c != 0
}

const aggregateClauses = ClauseSelect | ClauseGroupBy | ClauseHaving | ClauseOrderBy

// functions is the process-wide whitelist. It is never mutated after init.
var functions = func() map[string]Function {
	m := make(map[string]Function)
	add := func(kind FunctionKind, clauses Clause, minArgs, maxArgs int, names ...string) {
		for _, n := range names {
			m[n] = Function{Name: n, Kind: kind, Clauses: clauses, MinArgs: minArgs, MaxArgs: maxArgs}
		}
	}

	add(FuncAggregate, aggregateClauses, 0, 1, "COUNT")
	add(FuncAggregate, aggregateClauses, 1, 1, "COUNT_DISTINCT", "SUM", "AVG", "MIN", "MAX")

	add(FuncSelect, ClauseSelect|ClauseOrderBy, 1, 1, "GROUPING", "CONVERTCURRENCY")
	add(FuncSelect, ClauseSelect|ClauseWhere, 1, 1, "TOLABEL")
	add(FuncSelect, ClauseSelect, 1, 1, "FORMAT", "FIELDS")

	add(FuncDate, ClauseSelect|ClauseWhere, 1, 1,
		"CALENDAR_MONTH", "CALENDAR_QUARTER", "CALENDAR_YEAR",
		"DAY_IN_MONTH", "DAY_IN_WEEK", "DAY_IN_YEAR", "DAY_ONLY",
		"FISCAL_MONTH", "FISCAL_QUARTER", "FISCAL_YEAR",
		"HOUR_IN_DAY", "WEEK_IN_MONTH", "WEEK_IN_YEAR")
	add(FuncTimezone, ClauseDateArg, 1, 1, "CONVERTTIMEZONE")

	add(FuncGeo, ClauseWhere, 3, 3, "DISTANCE")
	add(FuncGeo, ClauseWhere, 2, 2, "GEOLOCATION")
	return m
}()

// LookupFunction finds a function by name, ignoring case.
func LookupFunction(name string) (Function, bool) {
	f, ok := functions[strings.ToUpper(name)]
	return f, ok
}

// FunctionAllowed reports whether name may be called in clause c.
func FunctionAllowed(name string, c Clause) bool {
	f, ok := LookupFunction(name)
	return ok && f.Allowed(c)
}

// IsAggregate reports whether name is an aggregate function.
func IsAggregate(name string) bool {
	f, ok := LookupFunction(name)
	return ok && f.Kind == FuncAggregate
}

// FunctionsFor returns the sorted names of functions legal in clause c.
func FunctionsFor(c Clause) []string {
	var out []string
	for name, f := range functions {
		if f.Allowed(c) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ArgClause returns the clause context for arguments nested inside a call
// to f made from clause outer.
func (f Function) ArgClause(outer Clause) Clause {
	if f.Kind == FuncDate {
		return outer | ClauseDateArg
	}
	return outer
}
