package table_test

import (
	"testing"

	"github.com/jrnilsson/parsegen/grammar"
	"github.com/jrnilsson/parsegen/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parenGrammar builds the balanced-parentheses grammar from
// original_source's example.py:
//
//	S    -> List
//	List -> List Pair | Pair
//	Pair -> ( Pair ) | ( )
func parenGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()

	s := grammar.NewNonTerminal("S")
	list := grammar.NewNonTerminal("List")
	pair := grammar.NewNonTerminal("Pair")
	lp := grammar.NewTerminal("(")
	rp := grammar.NewTerminal(")")

	g := grammar.New(s)
	require.NoError(t, g.AddProduction(s, []grammar.Symbol{list}))
	require.NoError(t, g.AddProduction(list, []grammar.Symbol{list, pair}))
	require.NoError(t, g.AddProduction(list, []grammar.Symbol{pair}))
	require.NoError(t, g.AddProduction(pair, []grammar.Symbol{lp, pair, rp}))
	require.NoError(t, g.AddProduction(pair, []grammar.Symbol{lp, rp}))

	return g
}

func TestBuildSLR1_ParenGrammar(t *testing.T) {
	g := parenGrammar(t)

	pt, err := table.BuildSLR1(g)
	require.NoError(t, err)
	assert.Empty(t, pt.Conflicts)
	assert.Greater(t, len(pt.States), 1)

	lp := grammar.NewTerminal("(")
	act, ok := pt.Action[table.StateTerm{State: 0, Term: lp}]
	require.True(t, ok)
	assert.Equal(t, table.LRShift, act.Type)
}

func TestBuildCLR1_ParenGrammar(t *testing.T) {
	g := parenGrammar(t)

	pt, err := table.BuildCLR1(g)
	require.NoError(t, err)
	assert.Empty(t, pt.Conflicts)
	assert.Greater(t, len(pt.States), 1)
}

func TestBuildLALR1_MergesStatesRelativeToCLR1(t *testing.T) {
	g := parenGrammar(t)

	clr1, err := table.BuildCLR1(g)
	require.NoError(t, err)

	lalr, err := table.BuildLALR1(g)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(lalr.States), len(clr1.States))
	assert.Greater(t, len(lalr.States), 0)
}

func TestBuildLL1_PlusTimesAGrammar(t *testing.T) {
	// S -> + S S | * S S | a
	s := grammar.NewNonTerminal("S")
	plus := grammar.NewTerminal("+")
	times := grammar.NewTerminal("*")
	a := grammar.NewTerminal("a")

	g := grammar.New(s)
	require.NoError(t, g.AddProduction(s, []grammar.Symbol{plus, s, s}))
	require.NoError(t, g.AddProduction(s, []grammar.Symbol{times, s, s}))
	require.NoError(t, g.AddProduction(s, []grammar.Symbol{a}))

	lt, err := table.BuildLL1(g)
	require.NoError(t, err)
	assert.True(t, lt.IsLL1())

	for _, tc := range []struct {
		term grammar.Terminal
		rhs  []grammar.Symbol
	}{
		{plus, []grammar.Symbol{plus, s, s}},
		{times, []grammar.Symbol{times, s, s}},
		{a, []grammar.Symbol{a}},
	} {
		cell := lt.Cells[table.LL1Key{LHS: s, Term: tc.term}]
		require.Len(t, cell, 1)
		assert.True(t, grammar.EqualSymbols(cell[0].RHS, tc.rhs))
	}
}

func TestParsingTable_String_RendersHeaders(t *testing.T) {
	g := parenGrammar(t)
	pt, err := table.BuildSLR1(g)
	require.NoError(t, err)

	out := pt.String()
	assert.Contains(t, out, "S")
	assert.Contains(t, out, "A:(")
}
