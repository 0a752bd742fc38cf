// Package token defines the token types produced by the query tokenizer.
//
// Keywords are matched case-insensitively against a fixed reserved set. The
// tables in this package are built once at init and never mutated.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	BOF TokenType = iota
	EOF

	// Literals
	IDENT    // identifier, dotted path or function name
	NUMBER   // 123, 45.67, -3
	STRING   // 'hello'
	DATE     // 2024-01-31
	DATETIME // 2024-01-31T10:00:00Z

	// Punctuation and operators
	COMMA    // ,
	LPAREN   // (
	RPAREN   // )
	COLON    // :
	QUESTION // ?
	EQ       // =
	NE       // != or <>
	LT       // <
	LE       // <=
	GT       // >
	GE       // >=

	// Keywords (alphabetical)
	AND
	AS
	ASC
	BY
	CATEGORY
	CUBE
	DATA
	DESC
	ELSE
	END
	EXCLUDES
	FIRST
	FROM
	GROUP
	HAVING
	IN
	INCLUDES
	LAST
	LIKE
	LIMIT
	NOT
	NULLS
	OFFSET
	OR
	ORDER
	ROLLUP
	SELECT
	THEN
	TYPEOF
	WHEN
	WHERE
	WITH
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	BOF: "BOF",
	EOF: "EOF",

	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	DATE:     "DATE",
	DATETIME: "DATETIME",

	COMMA:    ",",
	LPAREN:   "(",
	RPAREN:   ")",
	COLON:    ":",
	QUESTION: "?",
	EQ:       "=",
	NE:       "!=",
	LT:       "<",
	LE:       "<=",
	GT:       ">",
	GE:       ">=",

	AND:      "AND",
	AS:       "AS",
	ASC:      "ASC",
	BY:       "BY",
	CATEGORY: "CATEGORY",
	CUBE:     "CUBE",
	DATA:     "DATA",
	DESC:     "DESC",
	ELSE:     "ELSE",
	END:      "END",
	EXCLUDES: "EXCLUDES",
	FIRST:    "FIRST",
	FROM:     "FROM",
	GROUP:    "GROUP",
	HAVING:   "HAVING",
	IN:       "IN",
	INCLUDES: "INCLUDES",
	LAST:     "LAST",
	LIKE:     "LIKE",
	LIMIT:    "LIMIT",
	NOT:      "NOT",
	NULLS:    "NULLS",
	OFFSET:   "OFFSET",
	OR:       "OR",
	ORDER:    "ORDER",
	ROLLUP:   "ROLLUP",
	SELECT:   "SELECT",
	THEN:     "THEN",
	TYPEOF:   "TYPEOF",
	WHEN:     "WHEN",
	WHERE:    "WHERE",
	WITH:     "WITH",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = func() map[string]TokenType {
	m := make(map[string]TokenType, WITH-AND+1)
	for t := AND; t <= WITH; t++ {
		m[strings.ToLower(tokenNames[t])] = t
	}
	return m
}()

// LookupIdent returns the keyword token type for ident, or IDENT when ident
// is not reserved. The match is case-insensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a reserved keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= WITH
}

// IsSoftKeyword reports whether a keyword may also appear where a field name
// is expected. These words only carry meaning after a specific keyword
// (WITH DATA CATEGORY, NULLS FIRST/LAST).
func IsSoftKeyword(t TokenType) bool {
	switch t {
	case DATA, CATEGORY, FIRST, LAST, NULLS:
		return true
	}
	return false
}

// IsComparison returns true for the six comparison operators.
func IsComparison(t TokenType) bool {
	return t >= EQ && t <= GE
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	out := make([]string, 0, WITH-AND+1)
	for t := AND; t <= WITH; t++ {
		out = append(out, tokenNames[t])
	}
	return out
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// String formats the token for diagnostics.
func (t Token) String() string {
	switch t.Type {
	case IDENT, NUMBER, DATE, DATETIME:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	case STRING:
		return fmt.Sprintf("%s '%s'", t.Type, t.Literal)
	}
	return t.Type.String()
}
