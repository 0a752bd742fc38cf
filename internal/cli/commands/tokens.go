package commands

import (
	"strconv"

	"github.com/leapstack-labs/leapsoql/internal/cli/output"
	"github.com/leapstack-labs/leapsoql/pkg/parser"
	"github.com/leapstack-labs/leapsoql/pkg/token"
	"github.com/spf13/cobra"
)

// tokenRow is the JSON shape of one token.
type tokenRow struct {
	Type    string `json:"type"`
	Literal string `json:"literal,omitempty"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the token stream of a query",
		Long: `Scan a statement and print every token with its position.

Scanning stops at the first lexical error; tokens read up to that point are
still printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTokens,
	}
}

func runTokens(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	name, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	toks, lexErr := parser.Tokenize(text)
	rows := make([]tokenRow, 0, len(toks))
	types := make([]token.TokenType, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		types = append(types, tok.Type)
		rows = append(rows, tokenRow{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		})
	}
	cc.Logger.Debug("tokenized input", "source", name, "tokens", len(rows))

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(rows); err != nil {
			return err
		}
	} else {
		table := make([][]string, len(rows))
		for i, row := range rows {
			typ := row.Type
			if token.IsKeyword(types[i]) {
				typ = r.Styles().Keyword.Render(typ)
			}
			table[i] = []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(row.Line),
				strconv.Itoa(row.Column),
				typ,
				row.Literal,
			}
		}
		r.Table([]string{"#", "Line", "Column", "Type", "Literal"}, table)
	}

	if lexErr != nil {
		reportError(r, name, lexErr)
		return lexErr
	}
	return nil
}
