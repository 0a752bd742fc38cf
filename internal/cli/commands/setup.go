package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/leapstack-labs/leapsoql/internal/cli/config"
	"github.com/leapstack-labs/leapsoql/internal/cli/output"
	"github.com/leapstack-labs/leapsoql/pkg/builder"
	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/format"
	"github.com/leapstack-labs/leapsoql/pkg/parser"
	"github.com/leapstack-labs/leapsoql/pkg/token"
	"github.com/spf13/cobra"
)

// stdinName labels input read from standard input in diagnostics.
const stdinName = "<stdin>"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer stored on the
// command context by the root command. Missing values fall back to
// defaults so commands also run standalone.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.GetConfig(ctx)

	r, ok := output.FromContext(ctx)
	if !ok {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: r,
	}
}

// Render formats a query in the configured style.
func (c *CommandContext) Render(q *core.Query) string {
	if c.Cfg.Style == config.StylePretty {
		return format.Pretty(q, format.WithIndent(c.Cfg.Indent))
	}
	return format.Render(q)
}

// readInput returns the statement named by args: a file path, or standard
// input when args is empty or "-".
func readInput(cmd *cobra.Command, args []string) (name, text string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return stdinName, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return stdinName, string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return args[0], "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}

// errorPosition extracts the position and input carried by parser and
// binding errors.
func errorPosition(err error) (token.Position, string, bool) {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.Pos, pe.Input, true
	}
	var le *parser.LexError
	if errors.As(err, &le) {
		return le.Pos, le.Input, true
	}
	var ue *builder.UnresolvedParameterError
	if errors.As(err, &ue) && ue.Input != "" {
		return ue.Pos, ue.Input, true
	}
	return token.Position{}, "", false
}

// reportError writes a diagnostic for err with a source excerpt when the
// error carries a position.
func reportError(r *output.Renderer, name string, err error) {
	r.Error(fmt.Sprintf("%s: %v", name, err))
	pos, input, ok := errorPosition(err)
	if !ok {
		return
	}
	excerpt := parser.Excerpt(input, pos)
	if excerpt == "" {
		return
	}
	// Styled one line at a time; lipgloss pads multi-line blocks.
	source, caret, _ := strings.Cut(excerpt, "\n")
	_, _ = fmt.Fprintln(r.ErrWriter(), r.Styles().Muted.Render(source))
	_, _ = fmt.Fprintln(r.ErrWriter(), r.Styles().Caret.Render(caret))
}
