package grammar_test

import (
	"testing"

	"github.com/jrnilsson/parsegen/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exprGrammar builds the classic arithmetic-expression grammar used
// throughout this package's tests:
//
//	Expr  -> Expr + Term | Expr - Term | Term
//	Term  -> Term * Factor | Expr / Term | Factor
//	Factor -> num | ( Expr )
func exprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()

	expr := grammar.NewNonTerminal("Expr")
	term := grammar.NewNonTerminal("Term")
	factor := grammar.NewNonTerminal("Factor")

	plus := grammar.NewTerminal("+")
	minus := grammar.NewTerminal("-")
	times := grammar.NewTerminal("*")
	div := grammar.NewTerminal("/")
	num := grammar.NewTerminal("num")
	lp := grammar.NewTerminal("(")
	rp := grammar.NewTerminal(")")

	g := grammar.New(expr)
	require.NoError(t, g.AddProduction(expr, []grammar.Symbol{expr, plus, term}))
	require.NoError(t, g.AddProduction(expr, []grammar.Symbol{expr, minus, term}))
	require.NoError(t, g.AddProduction(expr, []grammar.Symbol{term}))
	require.NoError(t, g.AddProduction(term, []grammar.Symbol{term, times, factor}))
	require.NoError(t, g.AddProduction(term, []grammar.Symbol{expr, div, term}))
	require.NoError(t, g.AddProduction(term, []grammar.Symbol{factor}))
	require.NoError(t, g.AddProduction(factor, []grammar.Symbol{num}))
	require.NoError(t, g.AddProduction(factor, []grammar.Symbol{lp, expr, rp}))

	return g
}

func TestFirst_ExprGrammar(t *testing.T) {
	g := exprGrammar(t)
	expr := grammar.NewNonTerminal("Expr")

	first, err := grammar.First(expr, g)
	require.NoError(t, err)

	assert.True(t, first.Has(grammar.NewTerminal("(")))
	assert.True(t, first.Has(grammar.NewTerminal("num")))
	assert.Equal(t, 2, first.Len())
}

func TestFollow_ExprGrammar(t *testing.T) {
	g := exprGrammar(t)
	expr := grammar.NewNonTerminal("Expr")

	follow, err := grammar.Follow(expr, g)
	require.NoError(t, err)

	for _, sym := range []grammar.Symbol{
		grammar.NewTerminal(")"),
		grammar.NewTerminal("/"),
		grammar.NewTerminal("-"),
		grammar.NewTerminal("+"),
		grammar.End,
	} {
		assert.Truef(t, follow.Has(sym), "expected FOLLOW(Expr) to contain %s", sym)
	}
	assert.Equal(t, 5, follow.Len())
}

func TestFirst_DuplicateProductionRejected(t *testing.T) {
	s := grammar.NewNonTerminal("S")
	a := grammar.NewTerminal("a")
	g := grammar.New(s)

	require.NoError(t, g.AddProduction(s, []grammar.Symbol{a}))
	err := g.AddProduction(s, []grammar.Symbol{a})
	assert.ErrorIs(t, err, grammar.ErrDuplicateProduction)
}

func TestFirst_EpsilonProduction(t *testing.T) {
	s := grammar.NewNonTerminal("S")
	a := grammar.NewNonTerminal("A")
	x := grammar.NewTerminal("x")
	g := grammar.New(s)

	require.NoError(t, g.AddProduction(s, []grammar.Symbol{a, x}))
	require.NoError(t, g.AddProduction(a, []grammar.Symbol{grammar.Epsilon}))

	first, err := grammar.First(s, g)
	require.NoError(t, err)
	assert.True(t, first.Has(x))
	assert.False(t, first.Has(grammar.Epsilon))
}
