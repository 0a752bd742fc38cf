package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		in   string
		want TokenType
	}{
		{"select", SELECT},
		{"SELECT", SELECT},
		{"SeLeCt", SELECT},
		{"typeof", TYPEOF},
		{"includes", INCLUDES},
		{"category", CATEGORY},
		{"Name", IDENT},
		{"true", IDENT},
		{"null", IDENT},
		{"ABOVE_OR_BELOW", IDENT},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.in))
		})
	}
}

func TestKeywordTables(t *testing.T) {
	words := Keywords()
	assert.Len(t, words, 32)
	for _, w := range words {
		tok := LookupIdent(w)
		assert.True(t, IsKeyword(tok), w)
		assert.Equal(t, w, tok.String())
	}
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsSoftKeyword(DATA))
	assert.True(t, IsSoftKeyword(NULLS))
	assert.False(t, IsSoftKeyword(SELECT))

	for _, tt := range []TokenType{EQ, NE, LT, LE, GT, GE} {
		assert.True(t, IsComparison(tt), tt.String())
	}
	assert.False(t, IsComparison(LIKE))
	assert.False(t, IsKeyword(IDENT))
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "EOF", Token{Type: EOF}.String())
	assert.Equal(t, `IDENT "Name"`, Token{Type: IDENT, Literal: "Name"}.String())
	assert.Equal(t, "STRING 'x'", Token{Type: STRING, Literal: "x"}.String())
	assert.Equal(t, "FROM", Token{Type: FROM, Literal: "from"}.String())
	assert.Equal(t, "(", Token{Type: LPAREN, Literal: "("}.String())
	assert.Equal(t, "TOKEN(999)", TokenType(999).String())
	assert.Equal(t, "line 2, column 5", Position{Line: 2, Column: 5}.String())
}
