package commands

import (
	"github.com/leapstack-labs/leapsoql/internal/cli/output"
	"github.com/leapstack-labs/leapsoql/pkg/parser"
	"github.com/spf13/cobra"
)

// formatResult is the JSON shape of the format command.
type formatResult struct {
	Source string `json:"source"`
	Style  string `json:"style"`
	SOQL   string `json:"soql"`
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format [file|-]",
		Short: "Parse a query and print it in canonical form",
		Long: `Parse a single SOQL statement and print it back.

The canonical style renders the whole query on one line with upper case
keywords. The pretty style puts every clause on its own line and indents
nested conditions. Both outputs parse back to the same query.`,
		Example: `  # Canonical form of a file
  leapsoql format query.soql

  # Pretty form from stdin
  echo "select id from account where name='x'" | leapsoql format --style pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFormat,
	}
}

func runFormat(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	name, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	q, err := parser.Parse(text)
	if err != nil {
		reportError(r, name, err)
		return err
	}
	cc.Logger.Debug("formatted query", "source", name, "style", cc.Cfg.Style)

	soql := cc.Render(q)
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(formatResult{Source: name, Style: cc.Cfg.Style, SOQL: soql})
	}
	r.Println(soql)
	return nil
}
