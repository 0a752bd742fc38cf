package core

// Walk traverses n depth-first in source order, calling fn for each node.
// Children are skipped when fn returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range children(n) {
		Walk(c, fn)
	}
}

func children(n Node) []Node {
	var out []Node
	add := func(c Node) { out = append(out, c) }

	switch v := n.(type) {
	case *Query:
		if v.Select != nil {
			add(v.Select)
		}
		if v.From != nil {
			add(v.From)
		}
		if v.Where != nil {
			add(v.Where)
		}
		if v.With != nil {
			add(v.With)
		}
		if v.Group != nil {
			add(v.Group)
		}
		if v.Having != nil {
			add(v.Having)
		}
		if v.Order != nil {
			add(v.Order)
		}
	case *SelectPart:
		for _, it := range v.Items {
			add(it)
		}
	case *WherePart:
		if v.Group != nil {
			add(v.Group)
		}
	case *WithPart:
		if v.Group != nil {
			add(v.Group)
		}
	case *HavingPart:
		if v.Group != nil {
			add(v.Group)
		}
	case *GroupPart:
		for _, it := range v.Items {
			add(it)
		}
	case *OrderPart:
		for _, it := range v.Items {
			add(it)
		}
	case *OrderItem:
		add(v.Expr)
	case *SelectFunction:
		add(v.Call)
	case *FuncCall:
		for _, a := range v.Args {
			add(a)
		}
	case *Subquery:
		if v.Query != nil {
			add(v.Query)
		}
	case *TypeofSelect:
		for _, b := range v.Branches {
			add(b.Fields)
		}
		if v.Else != nil {
			add(v.Else)
		}
	case *LogicalGroup:
		for _, j := range v.Junctions {
			add(j)
		}
	case *LogicalJunction:
		add(v.Condition)
	case *LogicalCondition:
		add(v.Left)
		add(v.Right)
	case *ValueCollection:
		for _, val := range v.Values {
			add(val)
		}
	}
	return out
}

// Variables returns every named and positional placeholder in q, in
// source order, including those inside subqueries.
func Variables(q *Query) []Value {
	var vars []Value
	Walk(q, func(n Node) bool {
		switch v := n.(type) {
		case *NamedVariable:
			vars = append(vars, v)
		case *PositionalVariable:
			vars = append(vars, v)
		}
		return true
	})
	return vars
}
