package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// LexError reports malformed input found while scanning, such as an
// unterminated string or an invalid date.
type LexError struct {
	Pos     token.Position
	Message string
	Input   string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ParseError reports a grammar violation. Token is the offending token and
// Input the full text being parsed.
type ParseError struct {
	Pos     token.Position
	Token   token.Token
	Message string
	Input   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// WhitelistError reports a function name that is unknown or not permitted
// in the clause it appears in.
type WhitelistError struct {
	ParseError
	Function   string
	Clause     core.Clause
	Suggestion string
}

func (e *WhitelistError) Error() string {
	msg := e.ParseError.Error()
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Did you mean '%s'?", e.Suggestion)
	}
	return msg
}

// Unwrap exposes the embedded ParseError to errors.As.
func (e *WhitelistError) Unwrap() error {
	return &e.ParseError
}

// Common error messages
const (
	ErrUnexpectedToken      = "unexpected token %s, expected %s"
	ErrUnexpectedChar       = "unexpected character %q"
	ErrUnterminatedString   = "unterminated string literal"
	ErrUnterminatedComment  = "unterminated block comment"
	ErrInvalidEscape        = "invalid escape sequence \\%c"
	ErrInvalidDate          = "invalid date literal %q"
	ErrUnexpectedExpression = "unexpected expression %s"
	ErrUnknownFunction      = "unknown function %s"
	ErrFunctionNotAllowed   = "function %s is not allowed in %s"
	ErrFunctionArity        = "function %s expects %s, got %d"
	ErrNonNegativeInt       = "%s requires a non-negative integer, got %s"
	ErrHavingAggregate      = "HAVING condition must start with an aggregate function, got %s"
	ErrOperatorNotAllowed   = "operator %s is not allowed in %s"
	ErrSetOperand           = "operator %s requires a value list, subquery or variable"
	ErrScalarOperand        = "operator %s cannot compare against a value list or subquery"
	ErrDataCategoryJunction = "WITH DATA CATEGORY conditions can only be joined with AND"
	ErrDataCategoryNot      = "WITH DATA CATEGORY conditions cannot be negated or grouped"
	ErrTypeofBranch         = "TYPEOF requires at least one WHEN branch"
	ErrEmptyCollection      = "value list must not be empty"
	ErrNotIn                = "NOT before an operator must be followed by IN"
)

// Excerpt returns the line of input containing pos followed by a caret
// under the column, for diagnostics.
func Excerpt(input string, pos token.Position) string {
	if !pos.IsValid() {
		return ""
	}
	lines := strings.Split(input, "\n")
	if pos.Line > len(lines) {
		return ""
	}
	line := strings.TrimRight(lines[pos.Line-1], "\r")
	col := pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}
	return line + "\n" + strings.Repeat(" ", col-1) + "^"
}

// suggestFunction returns the closest function legal in clause, or "" when
// nothing is within two edits.
func suggestFunction(name string, clause core.Clause) string {
	name = strings.ToUpper(name)
	best, bestDistance := "", 3
	for _, candidate := range core.FunctionsFor(clause) {
		if d := levenshtein(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// levenshtein calculates edit distance between two strings.
func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
