package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leapsoql/internal/cli/config"
	"github.com/leapstack-labs/leapsoql/pkg/parser"
	"github.com/leapstack-labs/leapsoql/pkg/token"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "soql> "
	replContinuePrompt = "  ...> "
)

const replHelp = `Enter a SOQL statement to parse it and echo it back.
A statement that is not complete continues on the next line; end it
with ; to force evaluation.

  .pretty      render multi-line
  .canonical   render on one line
  .tokens      toggle the token dump
  .help        show this help
  .quit        exit`

// lineReader is the part of *readline.Instance the REPL loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive query shell",
		Long: `Start an interactive shell that parses each statement and prints it
back in canonical or pretty form.

History is kept in history_file when configured.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cc.Cfg.HistoryFile,
		AutoComplete:    replCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cc.Renderer
	r.Println(r.Styles().Bold.Render("LeapSOQL REPL"))
	r.Println(r.Styles().Muted.Render("Type .help for commands, .quit to exit"))
	r.Println()

	return newREPLSession(cc).run(rl)
}

func replCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".pretty"),
		readline.PcItem(".canonical"),
		readline.PcItem(".tokens"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem("SELECT"),
	)
}

// replSession holds the state of one interactive session.
type replSession struct {
	cc         *CommandContext
	showTokens bool
	buf        strings.Builder
}

func newREPLSession(cc *CommandContext) *replSession {
	return &replSession{cc: cc}
}

func (s *replSession) run(rl lineReader) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s.buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := s.dotCommand(line); quit {
				return nil
			}
			continue
		}

		if s.buf.Len() > 0 {
			s.buf.WriteByte('\n')
		}
		s.buf.WriteString(line)

		if s.evaluate(strings.HasSuffix(line, ";")) {
			s.buf.Reset()
			rl.SetPrompt(replPrompt)
		} else {
			rl.SetPrompt(replContinuePrompt)
		}
	}
}

// dotCommand runs a dot-command and reports whether the session should end.
func (s *replSession) dotCommand(line string) bool {
	r := s.cc.Renderer
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		r.Println(replHelp)
	case ".pretty":
		s.cc.Cfg.Style = config.StylePretty
		r.Println(r.Styles().Muted.Render("style: pretty"))
	case ".canonical":
		s.cc.Cfg.Style = config.StyleCanonical
		r.Println(r.Styles().Muted.Render("style: canonical"))
	case ".tokens":
		s.showTokens = !s.showTokens
		r.Println(r.Styles().Muted.Render("tokens: " + onOff(s.showTokens)))
	default:
		r.Warning(fmt.Sprintf("unknown command %s (try .help)", line))
	}
	return false
}

// evaluate parses the buffered statement. It returns false when the
// statement is incomplete and more input should be read; terminated
// statements are always evaluated.
func (s *replSession) evaluate(terminated bool) bool {
	r := s.cc.Renderer
	text := strings.TrimRight(s.buf.String(), "; \t")
	if text == "" {
		return true
	}

	q, err := parser.Parse(text)
	if err != nil && !terminated && incomplete(err) {
		return false
	}

	if s.showTokens {
		s.printTokens(text)
	}
	if err != nil {
		reportError(r, "repl", err)
		return true
	}
	r.Println(s.cc.Render(q))
	return true
}

// incomplete reports whether err was raised at the end of input.
func incomplete(err error) bool {
	var pe *parser.ParseError
	return errors.As(err, &pe) && pe.Token.Type == token.EOF
}

func (s *replSession) printTokens(text string) {
	toks, _ := parser.Tokenize(text)
	rows := make([][]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(tok.Pos.Line) + ":" + strconv.Itoa(tok.Pos.Column),
			tok.Type.String(),
			tok.Literal,
		})
	}
	s.cc.Renderer.Table([]string{"Position", "Type", "Literal"}, rows)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
