package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/leapsoql/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensCommand_JSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	require.NoError(t, tr.Run(NewTokensCommand(), nil, "SELECT Id FROM Account\nWHERE Amount > 10"))

	var rows []tokenRow
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &rows))
	assert.Equal(t, []tokenRow{
		{Type: "SELECT", Literal: "SELECT", Line: 1, Column: 1},
		{Type: "IDENT", Literal: "Id", Line: 1, Column: 8},
		{Type: "FROM", Literal: "FROM", Line: 1, Column: 11},
		{Type: "IDENT", Literal: "Account", Line: 1, Column: 16},
		{Type: "WHERE", Literal: "WHERE", Line: 2, Column: 1},
		{Type: "IDENT", Literal: "Amount", Line: 2, Column: 7},
		{Type: ">", Literal: ">", Line: 2, Column: 14},
		{Type: "NUMBER", Literal: "10", Line: 2, Column: 16},
	}, rows)
}

func TestTokensCommand_Table(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	require.NoError(t, tr.Run(NewTokensCommand(), nil, "SELECT Name FROM Lead"))

	out := tr.Output()
	assert.Contains(t, out, "| # ")
	assert.Contains(t, out, "| IDENT")
	assert.Contains(t, out, "Lead")
	assert.NotContains(t, out, "EOF")
	testutil.AssertValidMarkdown(t, out)
}

func TestTokensCommand_LexError(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	err := tr.Run(NewTokensCommand(), nil, "SELECT 'open")
	require.Error(t, err)

	assert.Contains(t, tr.Output(), "SELECT", "tokens before the error are printed")
	assert.Contains(t, tr.ErrorOutput(), "unterminated string literal")
}
