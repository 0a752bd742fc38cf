package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/token"
)

var ignorePositions = cmpopts.IgnoreTypes(token.Position{})

func mustParse(t *testing.T, input string) *core.Query {
	t.Helper()
	q, err := Parse(input)
	require.NoError(t, err, input)
	return q
}

func condAt(t *testing.T, g *core.LogicalGroup, i int) *core.LogicalCondition {
	t.Helper()
	require.Greater(t, len(g.Junctions), i)
	c, ok := g.Junctions[i].Condition.(*core.LogicalCondition)
	require.True(t, ok, "junction %d is %T", i, g.Junctions[i].Condition)
	return c
}

func TestParse_SelectItems(t *testing.T) {
	q := mustParse(t, "SELECT Id, Account.Name acct, COUNT(Id) AS total, (SELECT Id FROM Contacts) FROM Account")
	require.Len(t, q.Select.Items, 4)

	assert.Equal(t, &core.SelectField{Name: "Id"}, q.Select.Items[0])
	assert.Equal(t, &core.SelectField{Name: "Account.Name", Alias: "acct"}, q.Select.Items[1])

	fn, ok := q.Select.Items[2].(*core.SelectFunction)
	require.True(t, ok)
	assert.Equal(t, "COUNT", fn.Call.Name)
	assert.Equal(t, "total", fn.Alias)
	assert.Equal(t, []core.FuncArg{&core.FieldRef{Name: "Id"}}, fn.Call.Args)

	sub, ok := q.Select.Items[3].(*core.Subquery)
	require.True(t, ok)
	assert.Equal(t, "Contacts", sub.Query.From.Object)

	assert.Equal(t, "Account", q.From.Object)
	assert.Empty(t, q.From.Alias)
}

func TestParse_FromAlias(t *testing.T) {
	tests := []struct {
		input string
		alias string
	}{
		{"SELECT b.Id FROM Brand__c b", "b"},
		{"SELECT b.Id FROM Brand__c AS b", "b"},
		{"SELECT b.Id FROM Brand__c as b WHERE b.Name = 'x'", "b"},
		{"SELECT Id FROM Brand__c", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			q := mustParse(t, tt.input)
			assert.Equal(t, "Brand__c", q.From.Object)
			assert.Equal(t, tt.alias, q.From.Alias)
		})
	}
}

func TestParse_KeywordObjectNames(t *testing.T) {
	q := mustParse(t, "SELECT Id FROM Group")
	assert.Equal(t, "Group", q.From.Object)

	q = mustParse(t, "SELECT Id, Data, Last FROM Order ORDER BY Last NULLS LAST")
	assert.Equal(t, "Order", q.From.Object)
	assert.Equal(t, &core.SelectField{Name: "Data"}, q.Select.Items[1])
	assert.Equal(t, core.NullsLast, q.Order.Items[0].Nulls)
}

func TestParse_FlatChainOrder(t *testing.T) {
	q := mustParse(t, "SELECT Id FROM A WHERE a=1 OR b=2 AND c=3")
	g := q.Where.Group
	require.Len(t, g.Junctions, 3)

	ops := []core.JunctionOp{g.Junctions[0].Op, g.Junctions[1].Op, g.Junctions[2].Op}
	assert.Equal(t, []core.JunctionOp{core.OpNone, core.OpOr, core.OpAnd}, ops)
	assert.Equal(t, "a", condAt(t, g, 0).Left.(*core.FieldRef).Name)
	assert.Equal(t, "c", condAt(t, g, 2).Left.(*core.FieldRef).Name)
}

func TestParse_NestedGroupsAndNot(t *testing.T) {
	q := mustParse(t, "SELECT Id FROM A WHERE NOT Name = 'x' AND (Type = 'a' OR NOT (Type = 'b')) OR Id != null")
	g := q.Where.Group
	require.Len(t, g.Junctions, 3)

	assert.True(t, g.Junctions[0].Not)
	assert.Equal(t, core.OpAnd, g.Junctions[1].Op)

	inner, ok := g.Junctions[1].Condition.(*core.LogicalGroup)
	require.True(t, ok)
	require.Len(t, inner.Junctions, 2)
	assert.Equal(t, core.OpOr, inner.Junctions[1].Op)
	assert.True(t, inner.Junctions[1].Not)
	_, ok = inner.Junctions[1].Condition.(*core.LogicalGroup)
	assert.True(t, ok)

	last := condAt(t, g, 2)
	assert.Equal(t, core.OpNe, last.Operator)
	assert.Equal(t, &core.NullLiteral{}, last.Right)
}

func TestParse_LongChainIsFlat(t *testing.T) {
	input := "SELECT Id FROM A WHERE Id = 0"
	for i := 0; i < 2000; i++ {
		input += " AND Id = 1"
	}
	q := mustParse(t, input)
	assert.Len(t, q.Where.Group.Junctions, 2001)
}

func TestParse_WhereValues(t *testing.T) {
	tests := []struct {
		name  string
		where string
		want  core.Value
	}{
		{"string", "Name = 'Acme'", &core.StringLiteral{Value: "Acme"}},
		{"number", "Amount > 32.3", &core.NumberLiteral{Text: "32.3"}},
		{"negative number", "Amount > -5", &core.NumberLiteral{Text: "-5"}},
		{"date", "CloseDate = 2024-01-31", &core.DateLiteral{Text: "2024-01-31"}},
		{"datetime", "CreatedDate > 2024-01-31T10:00:00Z", &core.DateTimeLiteral{Text: "2024-01-31T10:00:00Z"}},
		{"true", "IsDeleted = TRUE", &core.BooleanLiteral{Value: true}},
		{"false lower", "IsDeleted = false", &core.BooleanLiteral{Value: false}},
		{"null", "ParentId = NULL", &core.NullLiteral{}},
		{"date constant", "CloseDate = today", &core.DateConstant{Name: "TODAY"}},
		{"date constant fiscal", "CloseDate = NEXT_FISCAL_QUARTER", &core.DateConstant{Name: "NEXT_FISCAL_QUARTER"}},
		{"date formula", "CloseDate = LAST_N_DAYS:5", &core.DateFormula{Name: "LAST_N_DAYS", N: "5"}},
		{"currency", "Amount > USD5000", &core.CurrencyLiteral{Code: "USD", Amount: "5000"}},
		{"currency decimal", "Amount > EUR49.99", &core.CurrencyLiteral{Code: "EUR", Amount: "49.99"}},
		{"named variable", "Id = :id", &core.NamedVariable{Name: "id"}},
		{"positional variable", "Id = ?", &core.PositionalVariable{Index: 0}},
		{"collection", "Id IN ('a', :b, ?)", &core.ValueCollection{Values: []core.Value{
			&core.StringLiteral{Value: "a"}, &core.NamedVariable{Name: "b"}, &core.PositionalVariable{Index: 0},
		}}},
		{"variable list", "Id IN :ids", &core.NamedVariable{Name: "ids"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New().ParseWhere(tt.where)
			require.NoError(t, err)
			got := condAt(t, g, 0).Right
			assert.Empty(t, cmp.Diff(tt.want, got, ignorePositions))
		})
	}
}

func TestParse_Operators(t *testing.T) {
	tests := []struct {
		where string
		op    core.Operator
	}{
		{"a = 1", core.OpEq},
		{"a != 1", core.OpNe},
		{"a <> 1", core.OpNe},
		{"a < 1", core.OpLt},
		{"a <= 1", core.OpLe},
		{"a > 1", core.OpGt},
		{"a >= 1", core.OpGe},
		{"a LIKE 'x%'", core.OpLike},
		{"a IN (1, 2)", core.OpIn},
		{"a NOT IN (1, 2)", core.OpNotIn},
		{"a INCLUDES ('x;y')", core.OpIncludes},
		{"a EXCLUDES ('x')", core.OpExcludes},
	}
	for _, tt := range tests {
		t.Run(tt.where, func(t *testing.T) {
			g, err := New().ParseWhere(tt.where)
			require.NoError(t, err)
			assert.Equal(t, tt.op, condAt(t, g, 0).Operator)
		})
	}
}

func TestParse_Subqueries(t *testing.T) {
	q := mustParse(t, "SELECT Id FROM Account WHERE Id IN (SELECT AccountId FROM Contact WHERE Email = ?) AND Name = ?")
	in := condAt(t, q.Where.Group, 0)
	sub, ok := in.Right.(*core.Subquery)
	require.True(t, ok)
	assert.Equal(t, "Contact", sub.Query.From.Object)

	inner := condAt(t, sub.Query.Where.Group, 0).Right.(*core.PositionalVariable)
	outer := condAt(t, q.Where.Group, 1).Right.(*core.PositionalVariable)
	assert.Equal(t, 0, inner.Index)
	assert.Equal(t, 1, outer.Index)
}

func TestParse_PositionalCounterResets(t *testing.T) {
	p := New()
	for i := 0; i < 2; i++ {
		q, err := p.Parse("SELECT Id FROM A WHERE a = ? AND b = ?")
		require.NoError(t, err)
		assert.Equal(t, 0, condAt(t, q.Where.Group, 0).Right.(*core.PositionalVariable).Index)
		assert.Equal(t, 1, condAt(t, q.Where.Group, 1).Right.(*core.PositionalVariable).Index)
	}
}

func TestParse_Typeof(t *testing.T) {
	q := mustParse(t, "SELECT TYPEOF o WHEN t1 THEN f1 WHEN t2 THEN f2, f3 ELSE f4 END FROM s")
	ts, ok := q.Select.Items[0].(*core.TypeofSelect)
	require.True(t, ok)

	assert.Equal(t, "o", ts.Object)
	require.Len(t, ts.Branches, 2)
	assert.Equal(t, "t1", ts.Branches[0].Type)
	assert.Equal(t, "t2", ts.Branches[1].Type)
	assert.Len(t, ts.Branches[1].Fields.Items, 2)
	require.NotNil(t, ts.Else)
	assert.Equal(t, []core.SelectItem{&core.SelectField{Name: "f4"}}, ts.Else.Items)

	q = mustParse(t, "SELECT Id, TYPEOF What WHEN Account THEN Phone END, Name FROM Event")
	assert.Len(t, q.Select.Items, 3)
	assert.Nil(t, q.Select.Items[1].(*core.TypeofSelect).Else)
}

func TestParse_Functions(t *testing.T) {
	q := mustParse(t, "SELECT toLabel(Status), CALENDAR_YEAR(CreatedDate), FIELDS(STANDARD) FROM Case "+
		"WHERE DAY_ONLY(convertTimezone(CreatedDate)) = 2024-01-01 "+
		"AND DISTANCE(geofield__c, GEOLOCATION(37.7, -122.3), 'mi') > 3")

	lbl := q.Select.Items[0].(*core.SelectFunction)
	assert.Equal(t, "toLabel", lbl.Call.Name, "function names keep their spelling")

	day := condAt(t, q.Where.Group, 0).Left.(*core.FuncCall)
	require.Len(t, day.Args, 1)
	assert.Equal(t, "convertTimezone", day.Args[0].(*core.FuncCall).Name)

	dist := condAt(t, q.Where.Group, 1).Left.(*core.FuncCall)
	require.Len(t, dist.Args, 3)
	geo := dist.Args[1].(*core.FuncCall)
	assert.Equal(t, []core.FuncArg{&core.NumberLiteral{Text: "37.7"}, &core.NumberLiteral{Text: "-122.3"}}, geo.Args)
	assert.Equal(t, &core.StringLiteral{Value: "mi"}, dist.Args[2])

	q = mustParse(t, "SELECT COUNT() FROM Account")
	assert.Empty(t, q.Select.Items[0].(*core.SelectFunction).Call.Args)
}

func TestParse_WithVariants(t *testing.T) {
	q := mustParse(t, "SELECT Title FROM KnowledgeArticleVersion WITH DATA CATEGORY Geography__c AT (usa__c, uk__c) AND Product__c ABOVE_OR_BELOW mobile__c")
	require.Equal(t, core.WithDataCategory, q.With.Type)
	g := q.With.Group
	require.Len(t, g.Junctions, 2)

	first := condAt(t, g, 0)
	assert.Equal(t, core.OpAt, first.Operator)
	assert.Equal(t, &core.ValueCollection{Values: []core.Value{
		&core.FieldRef{Name: "usa__c"}, &core.FieldRef{Name: "uk__c"},
	}}, first.Right)
	second := condAt(t, g, 1)
	assert.Equal(t, core.OpAboveOrBelow, second.Operator)
	assert.Equal(t, &core.FieldRef{Name: "mobile__c"}, second.Right)

	q = mustParse(t, "SELECT Id FROM Account WITH SECURITY_ENFORCED")
	assert.Equal(t, core.WithFlag, q.With.Type)
	assert.Equal(t, "SECURITY_ENFORCED", q.With.Flag)

	q = mustParse(t, "SELECT Id FROM Account WITH USER_MODE ORDER BY Id")
	assert.Equal(t, "USER_MODE", q.With.Flag)
	assert.NotNil(t, q.Order)

	q = mustParse(t, "SELECT Id FROM UserProfileFeed WITH UserId = '005'")
	assert.Equal(t, core.WithFilter, q.With.Type)
	assert.Equal(t, core.OpEq, condAt(t, q.With.Group, 0).Operator)
}

func TestParse_WithDataFieldFilter(t *testing.T) {
	tests := []struct {
		input string
		field string
		op    core.Operator
	}{
		{"SELECT Id FROM Obj WITH Data = 'x'", "Data", core.OpEq},
		{"SELECT Id FROM Obj WITH data IN ('a', 'b')", "data", core.OpIn},
		{"SELECT Id FROM Obj WITH Data LIKE 'x%' ORDER BY Id", "Data", core.OpLike},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			q := mustParse(t, tt.input)
			require.Equal(t, core.WithFilter, q.With.Type)
			cond := condAt(t, q.With.Group, 0)
			assert.Equal(t, tt.op, cond.Operator)
			assert.Equal(t, &core.FieldRef{Name: tt.field}, cond.Left)
		})
	}
}

func TestParse_GroupByModes(t *testing.T) {
	tests := []struct {
		input string
		mode  core.GroupMode
		items int
	}{
		{"SELECT Type FROM Account GROUP BY Type, Industry", core.GroupPlain, 2},
		{"SELECT Type FROM Account GROUP BY ROLLUP(Type, Industry)", core.GroupRollup, 2},
		{"SELECT Type FROM Account GROUP BY CUBE (Type)", core.GroupCube, 1},
		{"SELECT Type FROM Account GROUP BY Type, COUNT(Id)", core.GroupPlain, 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			q := mustParse(t, tt.input)
			assert.Equal(t, tt.mode, q.Group.Mode)
			assert.Len(t, q.Group.Items, tt.items)
		})
	}
}

func TestParse_HavingOrderLimitOffset(t *testing.T) {
	q := mustParse(t, "SELECT Name, COUNT(Id) FROM Account GROUP BY Name HAVING COUNT(Id) > 1 AND MAX(Amount) <= :cap "+
		"ORDER BY Name DESC NULLS FIRST, COUNT(Id) ASC, CreatedDate LIMIT 10 OFFSET 0")

	h := q.Having.Group
	require.Len(t, h.Junctions, 2)
	assert.Equal(t, "COUNT", condAt(t, h, 0).Left.(*core.FuncCall).Name)
	assert.Equal(t, "cap", condAt(t, h, 1).Right.(*core.NamedVariable).Name)

	require.Len(t, q.Order.Items, 3)
	assert.Equal(t, core.Descending, q.Order.Items[0].Direction)
	assert.Equal(t, core.NullsFirst, q.Order.Items[0].Nulls)
	assert.Equal(t, core.Ascending, q.Order.Items[1].Direction)
	_, isFunc := q.Order.Items[1].Expr.(*core.FuncCall)
	assert.True(t, isFunc)
	assert.Equal(t, core.NullsDefault, q.Order.Items[2].Nulls)

	require.NotNil(t, q.Limit)
	require.NotNil(t, q.Offset)
	assert.Equal(t, 10, *q.Limit)
	assert.Equal(t, 0, *q.Offset)
}

func TestParse_Fragments(t *testing.T) {
	p := New()

	sel, err := p.ParseSelect("Id, Name")
	require.NoError(t, err)
	assert.Len(t, sel.Items, 2)

	sel, err = p.ParseSelect("SELECT Id")
	require.NoError(t, err)
	assert.Len(t, sel.Items, 1)

	from, err := p.ParseFrom("Account a")
	require.NoError(t, err)
	assert.Equal(t, &core.FromPart{Object: "Account", Alias: "a"}, from)

	with, err := p.ParseWith("SECURITY_ENFORCED")
	require.NoError(t, err)
	assert.Equal(t, core.WithFlag, with.Type)

	group, err := p.ParseGroup("GROUP BY Name")
	require.NoError(t, err)
	assert.Len(t, group.Items, 1)

	having, err := p.ParseHaving("COUNT(Id) > 2")
	require.NoError(t, err)
	assert.Len(t, having.Junctions, 1)

	order, err := p.ParseOrder("Name DESC")
	require.NoError(t, err)
	assert.Equal(t, core.Descending, order.Items[0].Direction)

	left, err := p.ParseLeftWhere("TOLABEL(Status)")
	require.NoError(t, err)
	assert.Equal(t, "TOLABEL", left.(*core.FuncCall).Name)

	right, err := p.ParseRightWhere("('a', 'b')")
	require.NoError(t, err)
	assert.Len(t, right.(*core.ValueCollection).Values, 2)

	agg, err := p.ParseLeftHaving("SUM(Amount)")
	require.NoError(t, err)
	assert.Equal(t, "SUM", agg.Name)

	hv, err := p.ParseRightHaving("USD100")
	require.NoError(t, err)
	assert.Equal(t, &core.CurrencyLiteral{Code: "USD", Amount: "100"}, hv)

	_, err = p.ParseWhere("Name = 'x' LIMIT 5")
	require.Error(t, err, "fragments must consume the whole input")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		column  int
	}{
		{"negative limit", "SELECT Id FROM A LIMIT -1", "LIMIT requires a non-negative integer, got -1", 24},
		{"negative offset", "SELECT Id FROM A OFFSET -5", "OFFSET requires a non-negative integer, got -5", 25},
		{"decimal limit", "SELECT Id FROM A LIMIT 1.5", "LIMIT requires a non-negative integer, got 1.5", 24},
		{"having plain field", "SELECT Name FROM A GROUP BY Name HAVING Name = 1", "HAVING condition must start with an aggregate function, got Name", 41},
		{"having like", "SELECT Name FROM A GROUP BY Name HAVING COUNT(Id) LIKE 'x'", "operator LIKE is not allowed in HAVING", 51},
		{"having collection", "SELECT Name FROM A GROUP BY Name HAVING COUNT(Id) = (1)", "unexpected expression (", 53},
		{"missing from", "SELECT Id", "unexpected token EOF, expected FROM", 10},
		{"trailing tokens", "SELECT Id FROM A B C", `unexpected token IDENT "C", expected EOF`, 20},
		{"typeof without when", "SELECT TYPEOF o ELSE f END FROM s", ErrTypeofBranch, 8},
		{"typeof without end", "SELECT TYPEOF o WHEN t THEN f FROM s", "unexpected token FROM, expected END", 31},
		{"rollup without paren", "SELECT Type FROM A GROUP BY ROLLUP Type", `unexpected token IDENT "Type", expected (`, 36},
		{"data category or", "SELECT Id FROM A WITH DATA CATEGORY g AT c OR h AT d", ErrDataCategoryJunction, 44},
		{"data category operator", "SELECT Id FROM A WITH DATA CATEGORY g NEAR c", "operator NEAR is not allowed in WITH DATA CATEGORY", 39},
		{"data category value", "SELECT Id FROM A WITH DATA CATEGORY g AT 'c'", `unexpected token STRING 'c', expected name`, 42},
		{"in without list", "SELECT Id FROM A WHERE Id IN 'x'", "operator IN requires a value list, subquery or variable", 27},
		{"equals list", "SELECT Id FROM A WHERE Id = ('x')", "operator = cannot compare against a value list or subquery", 27},
		{"not like", "SELECT Id FROM A WHERE Id NOT LIKE 'x'", ErrNotIn, 31},
		{"unknown bare word", "SELECT Id FROM A WHERE Id = bogus", `unexpected expression IDENT "bogus"`, 29},
		{"lowercase currency", "SELECT Id FROM A WHERE Amount = usd10", `unexpected expression IDENT "usd10"`, 33},
		{"formula without count", "SELECT Id FROM A WHERE d = LAST_N_DAYS", `unexpected token EOF, expected :`, 39},
		{"empty list", "SELECT Id FROM A WHERE Id IN ()", ErrEmptyCollection, 31},
		{"arity", "SELECT SUM(a, b) FROM A", "function SUM expects 1 argument, got 2", 8},
		{"paren without select", "SELECT (Id) FROM A", "unexpected token (, expected subquery", 8},
		{"unclosed group", "SELECT Id FROM A WHERE (a = 1", "unexpected token EOF, expected )", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "got %T: %v", err, err)
			assert.Equal(t, tt.message, parseErr.Message)
			assert.Equal(t, 1, parseErr.Pos.Line)
			assert.Equal(t, tt.column, parseErr.Pos.Column)
			assert.Equal(t, tt.input, parseErr.Input)
		})
	}
}

func TestParse_Whitelist(t *testing.T) {
	_, err := Parse("SELECT COUNT(x) FROM T")
	require.NoError(t, err)

	tests := []struct {
		name       string
		input      string
		function   string
		clause     core.Clause
		suggestion string
	}{
		{"unknown", "SELECT BOGUS(x) FROM T", "BOGUS", core.ClauseSelect, ""},
		{"typo", "SELECT COUNTT(x) FROM T", "COUNTT", core.ClauseSelect, "COUNT"},
		{"date function in having", "SELECT Id FROM T GROUP BY Id HAVING DAY_ONLY(x) > 1", "DAY_ONLY", core.ClauseHaving, ""},
		{"aggregate in where", "SELECT Id FROM T WHERE SUM(x) > 1", "SUM", core.ClauseWhere, ""},
		{"timezone at top level", "SELECT Id FROM T WHERE CONVERTTIMEZONE(x) > 1", "CONVERTTIMEZONE", core.ClauseWhere, ""},
		{"geo in select", "SELECT DISTANCE(a, b, 'mi') FROM T", "DISTANCE", core.ClauseSelect, ""},
		{"tolabel in group", "SELECT Id FROM T GROUP BY TOLABEL(x)", "TOLABEL", core.ClauseGroupBy, ""},
		{"order by", "SELECT Id FROM T ORDER BY DAY_ONLY(x)", "DAY_ONLY", core.ClauseOrderBy, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var wlErr *WhitelistError
			require.True(t, errors.As(err, &wlErr), "got %T: %v", err, err)
			assert.Equal(t, tt.function, wlErr.Function)
			assert.Equal(t, tt.clause, wlErr.Clause)
			assert.Equal(t, tt.suggestion, wlErr.Suggestion)
			assert.Contains(t, wlErr.Error(), tt.function)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr), "whitelist errors are parse errors")
		})
	}
}

func TestParse_LexErrorsSurface(t *testing.T) {
	_, err := Parse("SELECT Id FROM A WHERE Name = 'open")
	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, 31, lexErr.Pos.Column)
}

func TestExcerpt(t *testing.T) {
	input := "SELECT Id\nFROM A WHERE Id IN 'x'"
	_, err := Parse(input)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "FROM A WHERE Id IN 'x'\n"+strings.Repeat(" ", 16)+"^", Excerpt(input, parseErr.Pos))
	assert.Empty(t, Excerpt(input, token.Position{}))
}
