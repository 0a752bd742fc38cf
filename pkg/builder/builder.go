// Package builder assembles queries incrementally from structural calls
// and text fragments, and binds named or positional parameters.
//
//	b := builder.New()
//	soql, err := b.Select("Id, Name").
//	    From("Account").
//	    Where("Name = :name", map[string]any{"name": "Acme"}).
//	    Limit(10).
//	    SOQL()
//
// Every method records the first error it hits; later calls become no-ops
// and the error is returned by SOQL, Query, Template and Err. A builder may
// be reused with Reset or Prepare but is not safe for concurrent use.
package builder

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/format"
	"github.com/leapstack-labs/leapsoql/pkg/parser"
)

// QueryBuilder builds one query at a time.
type QueryBuilder struct {
	parser *parser.Parser
	logger *slog.Logger
	client Client
	strict bool

	query      *core.Query
	named      map[string]any
	positional []any
	err        error

	// sources maps each placeholder node to the text it was parsed from.
	sources map[core.Value]string
}

// Option configures a QueryBuilder.
type Option func(*QueryBuilder)

// WithLogger sets the logger used for debug output (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(b *QueryBuilder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithStrictParams controls whether unbound placeholders fail rendering
// (default true). When false they are rendered as written.
func WithStrictParams(strict bool) Option {
	return func(b *QueryBuilder) {
		b.strict = strict
	}
}

// WithClient sets the client used by Fetch and FetchOne.
func WithClient(c Client) Option {
	return func(b *QueryBuilder) {
		b.client = c
	}
}

// New creates an empty builder.
func New(opts ...Option) *QueryBuilder {
	b := &QueryBuilder{
		parser: parser.New(),
		logger: slog.New(slog.DiscardHandler),
		strict: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Reset()
	return b
}

// Reset discards the query under construction, all bindings and any
// recorded error. Options are kept.
func (b *QueryBuilder) Reset() *QueryBuilder {
	b.query = &core.Query{}
	b.named = make(map[string]any)
	b.positional = nil
	b.err = nil
	b.sources = make(map[core.Value]string)
	return b
}

// Err returns the first error recorded by the builder.
func (b *QueryBuilder) Err() error {
	return b.err
}

// Prepare replaces the builder state with a parsed statement. Optional
// parameter maps are bound as with BindAll.
func (b *QueryBuilder) Prepare(statement string, params ...map[string]any) *QueryBuilder {
	b.Reset()
	q, err := b.parser.Parse(statement)
	if err != nil {
		return b.fail("statement", statement, err)
	}
	b.query = q
	b.recordSources(statement)
	b.logger.Debug("prepared statement", "statement", statement)
	return b.bindMaps(params)
}

// Select appends items to the select list. Each fragment may hold several
// comma separated items and may start with SELECT.
func (b *QueryBuilder) Select(fragments ...string) *QueryBuilder {
	for _, f := range fragments {
		if b.err != nil {
			return b
		}
		sel, err := b.parser.ParseSelect(f)
		if err != nil {
			return b.fail("SELECT", f, err)
		}
		if b.query.Select == nil {
			b.query.Select = &core.SelectPart{}
		}
		b.query.Select.Items = append(b.query.Select.Items, sel.Items...)
		b.recordSources(f)
		b.grafted("SELECT", f)
	}
	return b
}

// From sets the object, with an optional alias.
func (b *QueryBuilder) From(fragment string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	from, err := b.parser.ParseFrom(fragment)
	if err != nil {
		return b.fail("FROM", fragment, err)
	}
	b.query.From = from
	b.grafted("FROM", fragment)
	return b
}

// Where replaces the WHERE clause. cond is a text fragment or an
// *ExprBuilder.
func (b *QueryBuilder) Where(cond any, params ...map[string]any) *QueryBuilder {
	return b.setWhere(core.OpNone, cond, params)
}

// AndWhere appends cond to the WHERE clause joined with AND. A cond of
// several junctions is appended as one parenthesized group.
func (b *QueryBuilder) AndWhere(cond any, params ...map[string]any) *QueryBuilder {
	return b.setWhere(core.OpAnd, cond, params)
}

// OrWhere appends cond to the WHERE clause joined with OR.
func (b *QueryBuilder) OrWhere(cond any, params ...map[string]any) *QueryBuilder {
	return b.setWhere(core.OpOr, cond, params)
}

func (b *QueryBuilder) setWhere(op core.JunctionOp, cond any, params []map[string]any) *QueryBuilder {
	if b.err != nil {
		return b
	}
	g, fragment, err := b.condition(cond)
	if err != nil {
		return b.fail("WHERE", fragment, err)
	}
	if op == core.OpNone || b.query.Where == nil {
		b.query.Where = &core.WherePart{Group: g}
	} else {
		b.query.Where.Group = appendGroup(b.query.Where.Group, op, g)
	}
	text, _ := cond.(string)
	b.recordSources(text)
	b.grafted("WHERE", fragment)
	return b.bindMaps(params)
}

// WhereExpr starts an expression sub-builder that can be passed to Where,
// AndWhere or OrWhere.
func (b *QueryBuilder) WhereExpr() *ExprBuilder {
	return newExpr(b.parser)
}

// With replaces the WITH clause: a filter chain, DATA CATEGORY selection or
// a single flag such as SECURITY_ENFORCED.
func (b *QueryBuilder) With(fragment string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	w, err := b.parser.ParseWith(fragment)
	if err != nil {
		return b.fail("WITH", fragment, err)
	}
	b.query.With = w
	b.recordSources(fragment)
	b.grafted("WITH", fragment)
	return b
}

// GroupBy replaces the GROUP BY clause. Fragments are joined with commas,
// so GroupBy("Name", "Type") and GroupBy("ROLLUP(Name, Type)") both work.
func (b *QueryBuilder) GroupBy(fragments ...string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	fragment := strings.Join(fragments, ", ")
	g, err := b.parser.ParseGroup(fragment)
	if err != nil {
		return b.fail("GROUP BY", fragment, err)
	}
	b.query.Group = g
	b.grafted("GROUP BY", fragment)
	return b
}

// Having replaces the HAVING clause.
func (b *QueryBuilder) Having(fragment string, params ...map[string]any) *QueryBuilder {
	if b.err != nil {
		return b
	}
	g, err := b.parser.ParseHaving(fragment)
	if err != nil {
		return b.fail("HAVING", fragment, err)
	}
	b.query.Having = &core.HavingPart{Group: g}
	b.recordSources(fragment)
	b.grafted("HAVING", fragment)
	return b.bindMaps(params)
}

// OrderBy appends ordering items.
func (b *QueryBuilder) OrderBy(fragment string) *QueryBuilder {
	if b.err != nil {
		return b
	}
	o, err := b.parser.ParseOrder(fragment)
	if err != nil {
		return b.fail("ORDER BY", fragment, err)
	}
	if b.query.Order == nil {
		b.query.Order = &core.OrderPart{}
	}
	b.query.Order.Items = append(b.query.Order.Items, o.Items...)
	b.grafted("ORDER BY", fragment)
	return b
}

// Limit sets LIMIT.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	return b.setBound("LIMIT", n, &b.query.Limit)
}

// Offset sets OFFSET.
func (b *QueryBuilder) Offset(n int) *QueryBuilder {
	return b.setBound("OFFSET", n, &b.query.Offset)
}

func (b *QueryBuilder) setBound(clause string, n int, dst **int) *QueryBuilder {
	if b.err != nil {
		return b
	}
	if n < 0 {
		return b.fail(clause, "", fmt.Errorf("%w: %d", ErrNegative, n))
	}
	*dst = &n
	return b
}

// Query returns a deep copy of the query under construction with
// placeholders left in place.
func (b *QueryBuilder) Query() (*core.Query, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	return core.Clone(b.query), nil
}

// Template renders the query without binding parameters.
func (b *QueryBuilder) Template() (string, error) {
	q, err := b.Query()
	if err != nil {
		return "", err
	}
	return format.Render(q), nil
}

// SOQL binds parameters and renders the query canonically.
func (b *QueryBuilder) SOQL() (string, error) {
	q, err := b.Bound()
	if err != nil {
		return "", err
	}
	return format.Render(q), nil
}

func (b *QueryBuilder) validate() error {
	if b.err != nil {
		return b.err
	}
	if b.query.Select == nil || len(b.query.Select.Items) == 0 {
		return &CompositionError{Clause: "SELECT", Err: ErrMissingSelect}
	}
	if b.query.From == nil {
		return &CompositionError{Clause: "FROM", Err: ErrMissingFrom}
	}
	return nil
}

// fail records err as the builder's sticky error.
func (b *QueryBuilder) fail(clause, fragment string, err error) *QueryBuilder {
	if b.err == nil {
		b.err = &CompositionError{Clause: clause, Fragment: fragment, Err: err}
		b.logger.Debug("composition failed", "clause", clause, "error", err.Error())
	}
	return b
}

// recordSources attributes placeholders not seen before to text.
func (b *QueryBuilder) recordSources(text string) {
	for _, v := range core.Variables(b.query) {
		if _, ok := b.sources[v]; !ok {
			b.sources[v] = text
		}
	}
}

func (b *QueryBuilder) grafted(clause, fragment string) {
	renumberPositionals(b.query)
	b.logger.Debug("grafted fragment", "clause", clause, "fragment", fragment)
}

// condition resolves a Where argument into a logical group.
func (b *QueryBuilder) condition(cond any) (*core.LogicalGroup, string, error) {
	switch c := cond.(type) {
	case string:
		if strings.TrimSpace(c) == "" {
			return nil, c, ErrEmptyFragment
		}
		g, err := b.parser.ParseWhere(c)
		return g, c, err
	case *ExprBuilder:
		g, err := c.Group()
		if err != nil {
			return nil, "", err
		}
		return g, format.Node(g), nil
	case *core.LogicalGroup:
		if c == nil || len(c.Junctions) == 0 {
			return nil, "", ErrEmptyFragment
		}
		return core.CloneGroup(c), format.Node(c), nil
	}
	return nil, "", fmt.Errorf("%w of type %T", ErrBadCondition, cond)
}

// appendGroup joins g onto dst with op. A multi-junction g is nested so
// that it is evaluated as one operand.
func appendGroup(dst *core.LogicalGroup, op core.JunctionOp, g *core.LogicalGroup) *core.LogicalGroup {
	if len(g.Junctions) == 1 {
		j := g.Junctions[0]
		j.Op = op
		dst.Junctions = append(dst.Junctions, j)
		return dst
	}
	dst.Junctions = append(dst.Junctions, &core.LogicalJunction{Op: op, Condition: g})
	return dst
}

// renumberPositionals assigns positional placeholder indexes in source
// order. Fragments are parsed separately, so each starts counting at 0.
func renumberPositionals(q *core.Query) {
	next := 0
	core.Walk(q, func(n core.Node) bool {
		if v, ok := n.(*core.PositionalVariable); ok {
			v.Index = next
			next++
		}
		return true
	})
}
