package table

import (
	"fmt"

	"github.com/jrnilsson/parsegen/automaton"
	"github.com/jrnilsson/parsegen/grammar"
)

// BuildCLR1 constructs the canonical-LR(1) parsing table for g: the LR(1)
// canonical collection, with reduce actions placed only on each item's own
// computed lookahead terminal (never the full FOLLOW set, unlike SLR(1)).
// Ported from original_source `LR1.py`'s construct_parsing_table.
func BuildCLR1(g *grammar.Grammar) (*ParsingTable, error) {
	ag, C, err := automaton.CanonicalCollectionLR1(g)
	if err != nil {
		return nil, fmt.Errorf("building canonical LR(1) table: %w", err)
	}

	idxOf, states, err := numberStatesLR1(ag, C)
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
					next, err := automaton.GotoLR1(ag, state, term)
					if err != nil {
						return nil, fmt.Errorf("building canonical LR(1) table: %w", err)
					}
					toIdx, ok := idxOf[next.Key()]
					if !ok {
						continue
					}
					pt.setAction(i, term, LRAction{Type: LRShift, State: toIdx})
				}
				continue
			}

			if item.LHS.Equal(ag.Start) && item.Lookahead.Equal(grammar.End) {
				pt.setAction(i, grammar.End, LRAction{Type: LRAccept})
				continue
			}

			if item.LHS.Equal(ag.Start) {
				continue
			}

			prod := grammar.NewProduction(item.LHS, stripDot(item.RHS)...)
			pt.setAction(i, item.Lookahead, LRAction{Type: LRReduce, Production: prod})
		}

		for _, nt := range nts {
			next, err := automaton.GotoLR1(ag, state, nt)
			if err != nil {
				return nil, fmt.Errorf("building canonical LR(1) table: %w", err)
			}
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

// numberStatesLR1 assigns a stable integer index to each state of C in
// worklist discovery order (spec.md §5), asserting along the way that
// exactly one state contains the seed item [S' -> . S, $] — the
// state-numbering convention that fixes state 0 to "the" start state is
// only sound if that state is unique (spec.md §9).
func numberStatesLR1(ag *grammar.Grammar, C automaton.CanonicalSet) (map[string]int, []automaton.ItemSet, error) {
	ordered := C.DiscoveryOrder()

	seedCount := 0
	for _, s := range ordered {
		if containsSeedItemLR1(s, ag) {
			seedCount++
		}
	}
	if seedCount == 0 {
		return nil, nil, fmt.Errorf("building parsing table: no start state found in canonical collection")
	}
	if seedCount > 1 {
		return nil, nil, fmt.Errorf("building parsing table: %w", ErrAmbiguousStartState)
	}
	if len(ordered) == 0 || !containsSeedItemLR1(ordered[0], ag) {
		return nil, nil, fmt.Errorf("building parsing table: start state is not first in discovery order")
	}

	idxOf := make(map[string]int, len(ordered))
	for i, s := range ordered {
		idxOf[s.Key()] = i
	}

	return idxOf, ordered, nil
}

func containsSeedItemLR1(s automaton.ItemSet, ag *grammar.Grammar) bool {
	for _, item := range s.Items() {
		if !item.LHS.Equal(ag.Start) {
			continue
		}
		if len(item.RHS) > 0 && grammar.IsDot(item.RHS[0]) && item.LAKind == automaton.LookaheadOne && item.Lookahead.Equal(grammar.End) {
			return true
		}
	}
	return false
}
