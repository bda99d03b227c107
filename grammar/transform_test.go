package grammar_test

import (
	"testing"

	"github.com/jrnilsson/parsegen/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEliminateLeftRecursion_DirectRecursion(t *testing.T) {
	g := exprGrammar(t)

	out := grammar.EliminateLeftRecursion(g)

	for _, p := range out.Productions {
		if len(p.RHS) > 0 {
			assert.Falsef(t, p.RHS[0].Equal(p.LHS), "production %s is still left-recursive", p)
		}
	}

	// FIRST(Expr) must be unchanged by the transform: the language is the
	// same, only the derivation shape changed.
	expr := grammar.NewNonTerminal("Expr")
	first, err := grammar.First(expr, out)
	require.NoError(t, err)
	assert.True(t, first.Has(grammar.NewTerminal("(")))
	assert.True(t, first.Has(grammar.NewTerminal("num")))
}

func TestEliminateLeftRecursion_IndirectRecursion(t *testing.T) {
	// A -> B a | b
	// B -> A c
	a := grammar.NewNonTerminal("A")
	b := grammar.NewNonTerminal("B")
	ta := grammar.NewTerminal("a")
	tb := grammar.NewTerminal("b")
	tc := grammar.NewTerminal("c")

	g := grammar.New(a)
	require.NoError(t, g.AddProduction(a, []grammar.Symbol{b, ta}))
	require.NoError(t, g.AddProduction(a, []grammar.Symbol{tb}))
	require.NoError(t, g.AddProduction(b, []grammar.Symbol{a, tc}))

	out := grammar.EliminateLeftRecursion(g)

	for _, p := range out.Productions {
		if len(p.RHS) > 0 {
			assert.Falsef(t, p.RHS[0].Equal(p.LHS), "production %s is still left-recursive", p)
		}
	}
}

func TestLeftFactor_JSONObjectPrefix(t *testing.T) {
	// Obj -> { Pairs } | { }
	obj := grammar.NewNonTerminal("Obj")
	pairs := grammar.NewNonTerminal("Pairs")
	lb := grammar.NewTerminal("{")
	rb := grammar.NewTerminal("}")

	g := grammar.New(obj)
	require.NoError(t, g.AddProduction(obj, []grammar.Symbol{lb, pairs, rb}))
	require.NoError(t, g.AddProduction(obj, []grammar.Symbol{lb, rb}))

	out := grammar.LeftFactor(g)

	objProds := out.ProductionsFrom(obj)
	require.Len(t, objProds, 1)
	require.Len(t, objProds[0].RHS, 2)
	assert.True(t, objProds[0].RHS[0].Equal(lb))

	factored, ok := objProds[0].RHS[1].(grammar.NonTerminal)
	require.True(t, ok)

	suffixProds := out.ProductionsFrom(factored)
	require.Len(t, suffixProds, 2)
}
