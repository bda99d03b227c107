package table

import (
	"fmt"

	"github.com/jrnilsson/parsegen/automaton"
	"github.com/jrnilsson/parsegen/grammar"
)

// BuildSLR1 constructs the SLR(1) parsing table for g: the LR(0) canonical
// collection, with reduce actions placed on every terminal in FOLLOW of the
// reducing non-terminal rather than a computed lookahead set. Ported from
// original_source `SLR.py`'s construct_parsing_table, layered on this
// module's own automaton.CanonicalCollectionLR0 instead of the teacher's
// NFA-subset-construction LR(0) automaton (see DESIGN.md).
func BuildSLR1(g *grammar.Grammar) (*ParsingTable, error) {
	ag, C := automaton.CanonicalCollectionLR0(g)

	idxOf, states, err := numberStatesLR0(ag, C)
	if err != nil {
		return nil, err
	}

	pt := newParsingTable(ag)
	for i, s := range states {
		pt.States[i] = s
	}

	nts := ag.NonTerminals()

	for i, state := range states {
		for _, item := range state.Items() {
			after, hasAfter := item.AfterDot()

			if hasAfter {
				if term, ok := after.(grammar.Terminal); ok {
					next := automaton.GotoLR0(ag, state, term)
					toIdx, ok := idxOf[next.Key()]
					if !ok {
						continue
					}
					pt.setAction(i, term, LRAction{Type: LRShift, State: toIdx})
				}
				continue
			}

			if item.LHS.Equal(ag.Start) {
				pt.setAction(i, grammar.End, LRAction{Type: LRAccept})
				continue
			}

			prod := grammar.NewProduction(item.LHS, stripDot(item.RHS)...)
			followSet, err := grammar.Follow(item.LHS, ag)
			if err != nil {
				return nil, fmt.Errorf("building SLR(1) table: %w", err)
			}
			for _, sym := range followSet.Elements() {
				term, ok := sym.(grammar.Terminal)
				if !ok {
					continue
				}
				pt.setAction(i, term, LRAction{Type: LRReduce, Production: prod})
			}
		}

		for _, nt := range nts {
			next := automaton.GotoLR0(ag, state, nt)
			if next.Len() == 0 {
				continue
			}
			toIdx, ok := idxOf[next.Key()]
			if !ok {
				continue
			}
			pt.Goto[StateNonTerm{State: i, NT: nt}] = toIdx
		}
	}

	return pt, nil
}

// numberStatesLR0 assigns a stable integer index to each state of C in
// worklist discovery order (spec.md §5), asserting along the way that
// exactly one state contains the seed item [S' -> . S] (dot at the very
// start of the augmented start production) — the same uniqueness
// requirement spec.md §9 states explicitly for the LR(1) case applies
// here by the same reasoning.
func numberStatesLR0(ag *grammar.Grammar, C automaton.CanonicalSet) (map[string]int, []automaton.ItemSet, error) {
	ordered := C.DiscoveryOrder()

	seedCount := 0
	for _, s := range ordered {
		if containsSeedItemLR0(s, ag) {
			seedCount++
		}
	}
	if seedCount == 0 {
		return nil, nil, fmt.Errorf("building parsing table: no start state found in canonical collection")
	}
	if seedCount > 1 {
		return nil, nil, fmt.Errorf("building parsing table: %w", ErrAmbiguousStartState)
	}
	if len(ordered) == 0 || !containsSeedItemLR0(ordered[0], ag) {
		return nil, nil, fmt.Errorf("building parsing table: start state is not first in discovery order")
	}

	idxOf := make(map[string]int, len(ordered))
	for i, s := range ordered {
		idxOf[s.Key()] = i
	}

	return idxOf, ordered, nil
}

func containsSeedItemLR0(s automaton.ItemSet, ag *grammar.Grammar) bool {
	for _, item := range s.Items() {
		if !item.LHS.Equal(ag.Start) {
			continue
		}
		if len(item.RHS) > 0 && grammar.IsDot(item.RHS[0]) {
			return true
		}
	}
	return false
}

// stripDot returns rhs with its single Dot marker removed — the original
// production's RHS, recovered from an item whose dot has reached the end.
func stripDot(rhs []grammar.Symbol) []grammar.Symbol {
	out := make([]grammar.Symbol, 0, len(rhs)-1)
	for _, s := range rhs {
		if grammar.IsDot(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
