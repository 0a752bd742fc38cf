package core

// Clone returns a deep copy of q. The copy shares no nodes with q.
func Clone(q *Query) *Query {
	if q == nil {
		return nil
	}
	c := &Query{
		Select: CloneSelect(q.Select),
		From:   cloneFrom(q.From),
		Limit:  cloneInt(q.Limit),
		Offset: cloneInt(q.Offset),
	}
	if q.Where != nil {
		c.Where = &WherePart{Group: CloneGroup(q.Where.Group)}
	}
	if q.With != nil {
		c.With = &WithPart{Type: q.With.Type, Group: CloneGroup(q.With.Group), Flag: q.With.Flag}
	}
	if q.Group != nil {
		g := &GroupPart{Mode: q.Group.Mode}
		for _, it := range q.Group.Items {
			g.Items = append(g.Items, cloneNode(it).(Groupable))
		}
		c.Group = g
	}
	if q.Having != nil {
		c.Having = &HavingPart{Group: CloneGroup(q.Having.Group)}
	}
	if q.Order != nil {
		o := &OrderPart{}
		for _, it := range q.Order.Items {
			o.Items = append(o.Items, &OrderItem{
				Expr:      cloneNode(it.Expr).(Orderable),
				Direction: it.Direction,
				Nulls:     it.Nulls,
			})
		}
		c.Order = o
	}
	return c
}

// CloneSelect returns a deep copy of s.
func CloneSelect(s *SelectPart) *SelectPart {
	if s == nil {
		return nil
	}
	c := &SelectPart{}
	for _, it := range s.Items {
		c.Items = append(c.Items, cloneNode(it).(SelectItem))
	}
	return c
}

// CloneGroup returns a deep copy of g.
func CloneGroup(g *LogicalGroup) *LogicalGroup {
	if g == nil {
		return nil
	}
	c := &LogicalGroup{}
	for _, j := range g.Junctions {
		c.Junctions = append(c.Junctions, &LogicalJunction{
			Op:        j.Op,
			Not:       j.Not,
			Condition: cloneNode(j.Condition).(Condition),
		})
	}
	return c
}

// CloneValue returns a deep copy of v.
func CloneValue(v Value) Value {
	if v == nil {
		return nil
	}
	return cloneNode(v).(Value)
}

func cloneFrom(f *FromPart) *FromPart {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFunc(f *FuncCall) *FuncCall {
	c := &FuncCall{Name: f.Name, Start: f.Start}
	for _, a := range f.Args {
		c.Args = append(c.Args, cloneNode(a).(FuncArg))
	}
	return c
}

// cloneNode copies any node below the clause level.
func cloneNode(n Node) Node {
	switch v := n.(type) {
	case *FieldRef:
		c := *v
		return &c
	case *FuncCall:
		return cloneFunc(v)
	case *SelectField:
		c := *v
		return &c
	case *SelectFunction:
		return &SelectFunction{Call: cloneFunc(v.Call), Alias: v.Alias}
	case *Subquery:
		return &Subquery{Query: Clone(v.Query)}
	case *TypeofSelect:
		c := &TypeofSelect{Object: v.Object, Else: CloneSelect(v.Else)}
		for _, b := range v.Branches {
			c.Branches = append(c.Branches, &TypeofBranch{Type: b.Type, Fields: CloneSelect(b.Fields)})
		}
		return c
	case *LogicalGroup:
		return CloneGroup(v)
	case *LogicalCondition:
		return &LogicalCondition{
			Left:     cloneNode(v.Left).(Operand),
			Operator: v.Operator,
			Right:    CloneValue(v.Right),
			Start:    v.Start,
		}
	case *ValueCollection:
		c := &ValueCollection{}
		for _, val := range v.Values {
			c.Values = append(c.Values, CloneValue(val))
		}
		return c
	case *StringLiteral:
		c := *v
		return &c
	case *NumberLiteral:
		c := *v
		return &c
	case *DateLiteral:
		c := *v
		return &c
	case *DateTimeLiteral:
		c := *v
		return &c
	case *BooleanLiteral:
		c := *v
		return &c
	case *NullLiteral:
		return &NullLiteral{}
	case *DateConstant:
		c := *v
		return &c
	case *DateFormula:
		c := *v
		return &c
	case *CurrencyLiteral:
		c := *v
		return &c
	case *NamedVariable:
		c := *v
		return &c
	case *PositionalVariable:
		c := *v
		return &c
	}
	return n
}

// ValueSite locates a value visited by MapValues.
type ValueSite struct {
	// Clause is WHERE, WITH or HAVING.
	Clause   string
	Operator Operator
	// InList is set for elements of a value collection.
	InList bool
}

// MapValues returns a copy of q in which every condition value has been
// passed through fn together with its site. Collection elements are mapped
// one by one and subqueries are descended into. q itself is left untouched.
func MapValues(q *Query, fn func(Value, ValueSite) (Value, error)) (*Query, error) {
	c := Clone(q)
	if err := mapQuery(c, fn); err != nil {
		return nil, err
	}
	return c, nil
}

func mapQuery(q *Query, fn func(Value, ValueSite) (Value, error)) error {
	groups := []struct {
		clause string
		group  *LogicalGroup
	}{
		{"WHERE", groupOf(q.Where)},
		{"WITH", withGroupOf(q.With)},
		{"HAVING", havingGroupOf(q.Having)},
	}
	for _, g := range groups {
		if err := mapGroup(g.group, g.clause, fn); err != nil {
			return err
		}
	}
	if q.Select != nil {
		for _, it := range q.Select.Items {
			if sq, ok := it.(*Subquery); ok {
				if err := mapQuery(sq.Query, fn); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func groupOf(w *WherePart) *LogicalGroup {
	if w == nil {
		return nil
	}
	return w.Group
}

func withGroupOf(w *WithPart) *LogicalGroup {
	if w == nil {
		return nil
	}
	return w.Group
}

func havingGroupOf(h *HavingPart) *LogicalGroup {
	if h == nil {
		return nil
	}
	return h.Group
}

func mapGroup(g *LogicalGroup, clause string, fn func(Value, ValueSite) (Value, error)) error {
	if g == nil {
		return nil
	}
	for _, j := range g.Junctions {
		switch c := j.Condition.(type) {
		case *LogicalGroup:
			if err := mapGroup(c, clause, fn); err != nil {
				return err
			}
		case *LogicalCondition:
			v, err := mapValue(c.Right, ValueSite{Clause: clause, Operator: c.Operator}, fn)
			if err != nil {
				return err
			}
			c.Right = v
		}
	}
	return nil
}

func mapValue(v Value, site ValueSite, fn func(Value, ValueSite) (Value, error)) (Value, error) {
	switch t := v.(type) {
	case *ValueCollection:
		el := site
		el.InList = true
		for i, item := range t.Values {
			m, err := mapValue(item, el, fn)
			if err != nil {
				return nil, err
			}
			t.Values[i] = m
		}
		return t, nil
	case *Subquery:
		if err := mapQuery(t.Query, fn); err != nil {
			return nil, err
		}
		return t, nil
	}
	return fn(v, site)
}
