package driver_test

import (
	"testing"

	"github.com/jrnilsson/parsegen/driver"
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
func parenGrammar(t *testing.T) (*grammar.Grammar, grammar.NonTerminal) {
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

	return g, s
}

func toks(terms ...string) []driver.Token {
	out := make([]driver.Token, len(terms))
	for i, term := range terms {
		out[i] = driver.SimpleToken{Term: term, Text: term, Ln: 1, Pos: i + 1}
	}
	return out
}

func TestLRDriver_Parse_ParenGrammar(t *testing.T) {
	g, _ := parenGrammar(t)

	pt, err := table.BuildSLR1(g)
	require.NoError(t, err)
	require.Empty(t, pt.Conflicts)

	lr := driver.NewLRDriver(pt)
	stream := driver.NewSliceTokenStream(toks("(", "(", ")", ")", "(", ")"))

	tree, err := lr.Parse(stream)
	require.NoError(t, err)
	assert.Equal(t, "S", tree.Symbol.String())
}

func TestLRDriver_Parse_RejectsUnbalanced(t *testing.T) {
	g, _ := parenGrammar(t)

	pt, err := table.BuildCLR1(g)
	require.NoError(t, err)

	lr := driver.NewLRDriver(pt)
	stream := driver.NewSliceTokenStream(toks("(", ")", ")"))

	_, err = lr.Parse(stream)
	assert.ErrorIs(t, err, driver.ErrSyntax)
}

func TestLL1Driver_Parse_PlusTimesAGrammar(t *testing.T) {
	// S -> + S S | * S S | a
	s := grammar.NewNonTerminal("S")
	plus := grammar.NewTerminal("+")
	times := grammar.NewTerminal("*")
	a := grammar.NewTerminal("a")

	g := grammar.New(s)
	require.NoError(t, g.AddProduction(s, []grammar.Symbol{plus, s, s}))
	require.NoError(t, g.AddProduction(s, []grammar.Symbol{times, s, s}))
	require.NoError(t, g.AddProduction(s, []grammar.Symbol{a}))

	d, err := driver.GenerateLL1Driver(g, s)
	require.NoError(t, err)

	stream := driver.NewSliceTokenStream(toks("+", "a", "*", "a", "a"))
	tree, err := d.Parse(stream)
	require.NoError(t, err)
	assert.Equal(t, "S", tree.Symbol.String())
	require.Len(t, tree.Children, 3)
}

func TestLL1Driver_Parse_RejectsBadInput(t *testing.T) {
	s := grammar.NewNonTerminal("S")
	plus := grammar.NewTerminal("+")
	a := grammar.NewTerminal("a")

	g := grammar.New(s)
	require.NoError(t, g.AddProduction(s, []grammar.Symbol{plus, s, s}))
	require.NoError(t, g.AddProduction(s, []grammar.Symbol{a}))

	d, err := driver.GenerateLL1Driver(g, s)
	require.NoError(t, err)

	stream := driver.NewSliceTokenStream(toks(")"))
	_, err = d.Parse(stream)
	assert.ErrorIs(t, err, driver.ErrSyntax)
}
