package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/leapsoql/internal/cli/output"
	"github.com/leapstack-labs/leapsoql/pkg/builder"
	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/format"
	"github.com/leapstack-labs/leapsoql/pkg/soqltype"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// BindOptions holds options for the bind command.
type BindOptions struct {
	ParamsFile string
	Set        []string
	Positional []string
	List       bool
}

// bindResult is the JSON shape of the bind command.
type bindResult struct {
	Source       string   `json:"source"`
	SOQL         string   `json:"soql,omitempty"`
	Placeholders []string `json:"placeholders"`
}

// NewBindCommand creates the bind command.
func NewBindCommand() *cobra.Command {
	opts := &BindOptions{}
	cmd := &cobra.Command{
		Use:   "bind [file|-]",
		Short: "Bind parameters into a query template",
		Long: `Replace :name and ? placeholders in a query with literal values.

Values come from the params section of the config file, then the
--params file (YAML or JSON), then --set flags; later sources win.
Values are read as YAML scalars, so 42 is a number, true a boolean,
2024-01-31 a date and [a, b] a list. Quote a value to keep it a string.

Unbound placeholders are an error unless strict_params is false, in which
case they are printed as written.`,
		Example: `  # Bind from a file and a flag
  leapsoql bind query.soql --params params.yaml --set name=Acme

  # Positional parameters
  echo "SELECT Id FROM Account WHERE Name = ? LIMIT ?" | leapsoql bind --arg Acme --arg 5

  # Only list the placeholders
  leapsoql bind query.soql --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBind(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ParamsFile, "params", "p", "", "YAML or JSON file of named parameters")
	cmd.Flags().StringArrayVarP(&opts.Set, "set", "s", nil, "Named parameter as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Positional, "arg", nil, "Positional parameter value (repeatable, in order)")
	cmd.Flags().BoolVar(&opts.List, "list", false, "List placeholders instead of binding")
	cmd.Flags().Bool("strict-params", true, "Fail on unbound placeholders")

	return cmd
}

func runBind(cmd *cobra.Command, args []string, opts *BindOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	name, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	b := builder.New(
		builder.WithLogger(cc.Logger),
		builder.WithStrictParams(cc.Cfg.StrictParams),
	).Prepare(text)
	if err := b.Err(); err != nil {
		reportError(r, name, err)
		return err
	}

	placeholders := placeholderNames(b.Placeholders())
	if opts.List {
		return cc.listPlaceholders(name, placeholders)
	}

	paramsFile := opts.ParamsFile
	if paramsFile == "" {
		paramsFile = cc.Cfg.ParamsFile
	}
	params, err := collectParams(cc.Cfg.Params, paramsFile, opts.Set)
	if err != nil {
		return err
	}
	positional := make([]any, len(opts.Positional))
	for i, raw := range opts.Positional {
		positional[i] = parseParamValue(raw)
	}

	q, err := b.BindAll(params).BindPositional(positional...).Bound()
	if err != nil {
		reportError(r, name, err)
		return err
	}
	soql := cc.Render(q)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(bindResult{Source: name, SOQL: soql, Placeholders: placeholders})
	}
	r.Println(soql)
	return nil
}

func (c *CommandContext) listPlaceholders(name string, placeholders []string) error {
	r := c.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(bindResult{Source: name, Placeholders: placeholders})
	}
	if len(placeholders) == 0 {
		r.Println(r.Styles().Muted.Render("No placeholders."))
		return nil
	}
	rows := make([][]string, len(placeholders))
	for i, p := range placeholders {
		rows[i] = []string{strconv.Itoa(i + 1), p}
	}
	r.Table([]string{"#", "Placeholder"}, rows)
	return nil
}

// placeholderNames renders placeholders as :name, and ?N for positional
// ones numbered from 1.
func placeholderNames(vars []core.Value) []string {
	names := make([]string, 0, len(vars))
	for _, v := range vars {
		if pv, ok := v.(*core.PositionalVariable); ok {
			names = append(names, "?"+strconv.Itoa(pv.Index+1))
			continue
		}
		names = append(names, format.Node(v))
	}
	return names
}

// collectParams merges configured defaults, a parameter file and
// name=value pairs, later sources overriding earlier ones.
func collectParams(defaults map[string]any, file string, pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(defaults))
	for k, v := range defaults {
		params[k] = normalizeParam(v)
	}

	if file != "" {
		fromFile, err := loadParamsFile(file)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			params[k] = v
		}
	}

	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimPrefix(strings.TrimSpace(name), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want name=value", pair)
		}
		params[name] = parseParamValue(raw)
	}
	return params, nil
}

// loadParamsFile reads a YAML (or JSON) mapping of parameter names to
// values.
func loadParamsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse params file %s: %w", path, err)
	}
	params := make(map[string]any)
	if len(doc.Content) == 0 {
		return params, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("params file %s: want a mapping of names to values", path)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		v, err := nodeValue(root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("params file %s: parameter %s: %w", path, name, err)
		}
		params[name] = v
	}
	return params, nil
}

// parseParamValue reads raw as a YAML scalar or flow sequence. Anything
// else, including text that is not valid YAML, is kept as a string.
func parseParamValue(raw string) any {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil || len(doc.Content) == 0 {
		return raw
	}
	if doc.Content[0].Kind == yaml.MappingNode {
		return raw
	}
	v, err := nodeValue(doc.Content[0])
	if err != nil {
		return raw
	}
	return v
}

// nodeValue decodes a YAML node. Unquoted timestamps without a clock part
// become dates; sequences are decoded element by element.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!timestamp" && len(n.Value) == len("2006-01-02") {
			return soqltype.ParseDate(n.Value)
		}
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// normalizeParam maps timestamps at midnight UTC to dates and recurses into
// lists. Config values arrive already decoded, so the original spelling is
// no longer available.
func normalizeParam(v any) any {
	switch t := v.(type) {
	case time.Time:
		if t.Location() == time.UTC && t.Equal(t.Truncate(24*time.Hour)) {
			return soqltype.NewDate(t.Year(), t.Month(), t.Day())
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeParam(e)
		}
		return out
	}
	return v
}
