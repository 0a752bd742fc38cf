package core

// ---------- Query Root ----------

// Query is the root of a parsed or built statement. Select and From are
// required; every other clause is optional.
type Query struct {
	Select *SelectPart
	From   *FromPart
	Where  *WherePart
	With   *WithPart
	Group  *GroupPart
	Having *HavingPart
	Order  *OrderPart
	Limit  *int
	Offset *int
}

// Kind implements Node.
func (*Query) Kind() NodeKind { return KindQuery }

// SelectPart is the ordered list of select items.
type SelectPart struct {
	Items []SelectItem
}

// Kind implements Node.
func (*SelectPart) Kind() NodeKind { return KindSelectPart }

// FromPart names the queried object type.
type FromPart struct {
	Object string
	Alias  string
}

// Kind implements Node.
func (*FromPart) Kind() NodeKind { return KindFromPart }

// AliasName implements Aliasable.
func (f *FromPart) AliasName() string { return f.Alias }

// WithAlias implements Aliasable.
func (f *FromPart) WithAlias(alias string) Aliasable {
	c := *f
	c.Alias = alias
	return &c
}

// WherePart wraps the WHERE condition chain.
type WherePart struct {
	Group *LogicalGroup
}

// Kind implements Node.
func (*WherePart) Kind() NodeKind { return KindWherePart }

// WithKind distinguishes the three WITH clause shapes.
type WithKind int

// WithKind constants.
const (
	// WithFilter is a where-style condition chain.
	WithFilter WithKind = iota
	// WithDataCategory is WITH DATA CATEGORY followed by category conditions.
	WithDataCategory
	// WithFlag is a single bare identifier such as SECURITY_ENFORCED.
	WithFlag
)

// WithPart is the WITH clause. Group is set for WithFilter and
// WithDataCategory, Flag for WithFlag.
type WithPart struct {
	Type  WithKind
	Group *LogicalGroup
	Flag  string
}

// Kind implements Node.
func (*WithPart) Kind() NodeKind { return KindWithPart }

// GroupMode is the optional ROLLUP/CUBE modifier of GROUP BY.
type GroupMode int

// GroupMode constants.
const (
	GroupPlain GroupMode = iota
	GroupRollup
	GroupCube
)

func (m GroupMode) String() string {
	switch m {
	case GroupRollup:
		return "ROLLUP"
	case GroupCube:
		return "CUBE"
	}
	return ""
}

// GroupPart is the GROUP BY clause.
type GroupPart struct {
	Mode  GroupMode
	Items []Groupable
}

// Kind implements Node.
func (*GroupPart) Kind() NodeKind { return KindGroupPart }

// HavingPart wraps the HAVING condition chain.
type HavingPart struct {
	Group *LogicalGroup
}

// Kind implements Node.
func (*HavingPart) Kind() NodeKind { return KindHavingPart }

// OrderPart is the ORDER BY clause.
type OrderPart struct {
	Items []*OrderItem
}

// Kind implements Node.
func (*OrderPart) Kind() NodeKind { return KindOrderPart }

// Direction is the sort direction of an order item.
type Direction int

// Direction constants. Ascending is the default.
const (
	Ascending Direction = iota
	Descending
)

// NullsOrder is the placement of nulls within an order item.
type NullsOrder int

// NullsOrder constants. NullsDefault leaves placement unspecified.
const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// OrderItem is a single ORDER BY entry.
type OrderItem struct {
	Expr      Orderable
	Direction Direction
	Nulls     NullsOrder
}

// Kind implements Node.
func (*OrderItem) Kind() NodeKind { return KindOrderItem }
