package builder

import (
	"fmt"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/soqltype"
)

// Bind sets the value of the :name placeholder. Values are converted with
// soqltype.Literal when the query is rendered.
func (b *QueryBuilder) Bind(name string, value any) *QueryBuilder {
	b.named[name] = value
	return b
}

// BindAll sets several named values.
func (b *QueryBuilder) BindAll(params map[string]any) *QueryBuilder {
	for name, value := range params {
		b.named[name] = value
	}
	return b
}

// BindPositional sets the values of ? placeholders in source order,
// replacing earlier positional bindings.
func (b *QueryBuilder) BindPositional(values ...any) *QueryBuilder {
	b.positional = append([]any(nil), values...)
	return b
}

func (b *QueryBuilder) bindMaps(params []map[string]any) *QueryBuilder {
	for _, m := range params {
		b.BindAll(m)
	}
	return b
}

// Bound returns a copy of the query with every bound placeholder replaced
// by a literal. In strict mode an unbound placeholder is an error. A value
// that does not fit its operator, such as a scalar after IN or a list after
// =, is a CompositionError.
func (b *QueryBuilder) Bound() (*core.Query, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if b.strict {
		if err := b.checkResolved(); err != nil {
			return nil, err
		}
	}
	return core.MapValues(b.query, b.resolve)
}

// checkResolved reports the first placeholder, in source order, that has
// no binding.
func (b *QueryBuilder) checkResolved() error {
	for _, v := range core.Variables(b.query) {
		switch t := v.(type) {
		case *core.NamedVariable:
			if _, ok := b.named[t.Name]; !ok {
				return &UnresolvedParameterError{Name: t.Name, Pos: t.Start, Input: b.sources[v]}
			}
		case *core.PositionalVariable:
			if t.Index >= len(b.positional) {
				return &UnresolvedParameterError{Index: t.Index, Positional: true, Pos: t.Start, Input: b.sources[v]}
			}
		}
	}
	return nil
}

// Placeholders lists the placeholders of the query in source order.
func (b *QueryBuilder) Placeholders() []core.Value {
	return core.Variables(b.query)
}

func (b *QueryBuilder) resolve(v core.Value, site core.ValueSite) (core.Value, error) {
	var (
		value any
		ok    bool
	)
	switch t := v.(type) {
	case *core.NamedVariable:
		value, ok = b.named[t.Name]
		if !ok {
			return b.unresolved(v, &UnresolvedParameterError{Name: t.Name, Pos: t.Start})
		}
	case *core.PositionalVariable:
		if t.Index < len(b.positional) {
			value, ok = b.positional[t.Index], true
		}
		if !ok {
			return b.unresolved(v, &UnresolvedParameterError{Index: t.Index, Positional: true, Pos: t.Start})
		}
	default:
		return v, nil
	}

	lit, err := soqltype.Literal(value)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", placeholderName(v), err)
	}
	if err := checkSite(lit, site); err != nil {
		return nil, &CompositionError{Clause: site.Clause, Fragment: placeholderName(v), Err: err}
	}
	b.logger.Debug("bound parameter", "placeholder", placeholderName(v), "kind", lit.Kind().String())
	return lit, nil
}

func (b *QueryBuilder) unresolved(v core.Value, err *UnresolvedParameterError) (core.Value, error) {
	if b.strict {
		return nil, err
	}
	b.logger.Debug("leaving parameter unbound", "placeholder", placeholderName(v))
	return v, nil
}

func placeholderName(v core.Value) string {
	switch t := v.(type) {
	case *core.NamedVariable:
		return ":" + t.Name
	case *core.PositionalVariable:
		return fmt.Sprintf("?%d", t.Index+1)
	}
	return v.Kind().String()
}

// checkSite rejects a bound value that the parser would not accept where
// the placeholder stands.
func checkSite(v core.Value, site core.ValueSite) error {
	var list bool
	switch v.(type) {
	case *core.ValueCollection, *core.Subquery:
		list = true
	}
	switch {
	case site.InList && list:
		return fmt.Errorf("%w: a value list element cannot be a value list or subquery", ErrBadCondition)
	case site.InList:
		return nil
	case site.Operator.IsSet() && !list:
		return fmt.Errorf("%w: operator %s requires a value list, subquery or variable", ErrBadCondition, site.Operator)
	case !site.Operator.IsSet() && list:
		return fmt.Errorf("%w: operator %s cannot take a value list or subquery", ErrBadCondition, site.Operator)
	}
	return nil
}
