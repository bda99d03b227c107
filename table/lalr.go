package table

import (
	"fmt"

	"github.com/jrnilsson/parsegen/automaton"
	"github.com/jrnilsson/parsegen/grammar"
)

// BuildLALR1 constructs the LALR(1) parsing table for g by building the
// full canonical-LR(1) collection and then merging states that share the
// same core (their items with lookaheads erased) into one state whose
// items carry the union of the merged states' lookaheads.
//
// This is deliberately the "build LR(1), then merge by core" algorithm of
// original_source `LALR1.py`, not the kernel + spontaneous/propagated-
// lookahead algorithm this module's teacher codebase uses in its own
// `parse/lalr.go` — see DESIGN.md for why the simpler merge-after-the-fact
// approach was kept instead of the more efficient teacher one.
func BuildLALR1(g *grammar.Grammar) (*ParsingTable, error) {
	ag, C, err := automaton.CanonicalCollectionLR1(g)
	if err != nil {
		return nil, fmt.Errorf("building LALR(1) table: %w", err)
	}

	// Discovery order, not States()'s sorted order: spec.md §5 requires
	// state indices to follow the worklist walk, and a merged core's
	// index must reflect when its first raw LR(1) state was discovered.
	rawStates := C.DiscoveryOrder()

	coreIndexOf := map[string]int{}
	lookaheads := map[int]map[string]grammar.SymbolSet{}
	coreItemShape := map[int]map[string]automaton.Item{}
	representative := map[int]automaton.ItemSet{}
	rawStateCoreIdx := map[string]int{}

	nextIdx := 0
	for _, raw := range rawStates {
		coreKey := raw.Core().Key()
		idx, ok := coreIndexOf[coreKey]
		if !ok {
			idx = nextIdx
			nextIdx++
			coreIndexOf[coreKey] = idx
			lookaheads[idx] = map[string]grammar.SymbolSet{}
			coreItemShape[idx] = map[string]automaton.Item{}
			representative[idx] = raw
		}
		rawStateCoreIdx[raw.Key()] = idx

		for _, item := range raw.Items() {
			coreItem := item.Core()
			ck := coreItem.Key()
			if _, ok := lookaheads[idx][ck]; !ok {
				lookaheads[idx][ck] = grammar.SymbolSet{}
				coreItemShape[idx][ck] = coreItem
			}
			lookaheads[idx][ck].Add(item.Lookahead)
		}
	}

	mergedStates := map[int]automaton.ItemSet{}
	for idx := 0; idx < nextIdx; idx++ {
		ms := automaton.NewItemSet()
		for ck, item := range coreItemShape[idx] {
			ms.Add(automaton.NewMergedItem(item.LHS, item.RHS, lookaheads[idx][ck]))
		}
		mergedStates[idx] = ms
	}

	startOld := -1
	seedCount := 0
	for idx := 0; idx < nextIdx; idx++ {
		if containsSeedItemLR0(mergedStates[idx], ag) {
			seedCount++
			if startOld < 0 {
				startOld = idx
			}
		}
	}
	if startOld < 0 {
		return nil, fmt.Errorf("building LALR(1) table: no start state found after core merge")
	}
	if seedCount > 1 {
		return nil, fmt.Errorf("building LALR(1) table: %w", ErrAmbiguousStartState)
	}

	oldToNew := map[int]int{startOld: 0}
	newIdx := 1
	for idx := 0; idx < nextIdx; idx++ {
		if idx == startOld {
			continue
		}
		oldToNew[idx] = newIdx
		newIdx++
	}

	pt := newParsingTable(ag)
	for old, s := range mergedStates {
		pt.States[oldToNew[old]] = s
	}

	nts := ag.NonTerminals()

	for old := 0; old < nextIdx; old++ {
		i := oldToNew[old]
		raw := representative[old]
		state := pt.States[i]

		for _, item := range state.Items() {
			after, hasAfter := item.AfterDot()

			if hasAfter {
				if term, ok := after.(grammar.Terminal); ok {
					next, err := automaton.GotoLR1(ag, raw, term)
					if err != nil {
						return nil, fmt.Errorf("building LALR(1) table: %w", err)
					}
					oldTarget, ok := rawStateCoreIdx[next.Key()]
					if !ok {
						continue
					}
					pt.setAction(i, term, LRAction{Type: LRShift, State: oldToNew[oldTarget]})
				}
				continue
			}

			if item.LHS.Equal(ag.Start) {
				if item.Lookaheads.Has(grammar.End) {
					pt.setAction(i, grammar.End, LRAction{Type: LRAccept})
				}
				continue
			}

			prod := grammar.NewProduction(item.LHS, stripDot(item.RHS)...)
			for _, la := range item.Lookaheads.Elements() {
				term, ok := la.(grammar.Terminal)
				if !ok {
					continue
				}
				pt.setAction(i, term, LRAction{Type: LRReduce, Production: prod})
			}
		}

		for _, nt := range nts {
			next, err := automaton.GotoLR1(ag, raw, nt)
			if err != nil {
				return nil, fmt.Errorf("building LALR(1) table: %w", err)
			}
			if next.Len() == 0 {
				continue
			}
			oldTarget, ok := rawStateCoreIdx[next.Key()]
			if !ok {
				continue
			}
			pt.Goto[StateNonTerm{State: i, NT: nt}] = oldToNew[oldTarget]
		}
	}

	return pt, nil
}
