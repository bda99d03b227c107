package automaton_test

import (
	"testing"

	"github.com/jrnilsson/parsegen/automaton"
	"github.com/jrnilsson/parsegen/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parenGrammar builds the balanced-parentheses grammar used by this
// package's tests:
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

func TestCanonicalCollectionLR0_ParenGrammar(t *testing.T) {
	g := parenGrammar(t)

	ag, C := automaton.CanonicalCollectionLR0(g)

	assert.Greater(t, C.Len(), 1)

	startProds := ag.ProductionsFrom(ag.Start)
	require.Len(t, startProds, 1)

	var found bool
	for _, state := range C.States() {
		for _, item := range state.Items() {
			if item.LHS.Equal(ag.Start) {
				after, ok := item.AfterDot()
				if !ok {
					continue
				}
				_ = after
				found = true
			}
		}
	}
	assert.True(t, found, "expected some state to contain an item derived from the augmented start production")
}

func TestCanonicalCollectionLR1_ParenGrammar(t *testing.T) {
	g := parenGrammar(t)

	ag, C, err := automaton.CanonicalCollectionLR1(g)
	require.NoError(t, err)
	assert.Greater(t, C.Len(), 1)

	startItem := automaton.NewLR1Item(ag.Start, automaton.WithDotAtStart(ag.ProductionsFrom(ag.Start)[0]), grammar.End)

	var foundStart bool
	for _, state := range C.States() {
		if state.Has(startItem) {
			foundStart = true
			break
		}
	}
	assert.True(t, foundStart, "expected the canonical collection to contain the seed state")
}

func TestGotoLR0_AdvancesDot(t *testing.T) {
	g := parenGrammar(t)
	ag, startProd := automaton.Augmented(g)

	startItem := automaton.NewLR0Item(ag.Start, automaton.WithDotAtStart(startProd))
	start := automaton.ClosureLR0(ag, automaton.ItemSetOf(startItem))

	listSym := grammar.NewNonTerminal("List")
	next := automaton.GotoLR0(ag, start, listSym)

	assert.Greater(t, next.Len(), 0)
}
