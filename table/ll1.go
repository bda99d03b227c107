package table

import (
	"fmt"

	"github.com/jrnilsson/parsegen/grammar"
)

// LL1Table is a predictive parsing table: Cells[lhs, terminal] gives the
// production(s) to expand lhs with when terminal is the lookahead. Per
// spec.md §4.H.1 and original_source `LL1.py`, a cell may legally hold more
// than one production — that is precisely the grammar-is-not-LL(1)
// condition, reported via IsLL1 rather than treated as a construction
// failure.
type LL1Table struct {
	Grammar *grammar.Grammar
	Cells   map[LL1Key][]grammar.Production
}

// LL1Key is an LL1Table cell key.
type LL1Key struct {
	LHS  grammar.NonTerminal
	Term grammar.Terminal
}

// IsLL1 reports whether every cell holds at most one production — whether
// the grammar this table was built from is actually LL(1)-parsable.
func (t LL1Table) IsLL1() bool {
	for _, prods := range t.Cells {
		if len(prods) > 1 {
			return false
		}
	}
	return true
}

// BuildLL1 constructs the LL(1) parsing table for g. For every production
// p = A -> β, every terminal in FIRST(β) (less ε) gets A -> β added to
// Cells[A, terminal]; if ε ∈ FIRST(β), every terminal in FOLLOW(A) also
// gets A -> β added. Ported directly from original_source `LL1.py`'s
// construct_parsing_table, which does not itself reject non-LL(1)
// grammars — callers check IsLL1 before driving a deterministic parse
// from the result.
func BuildLL1(g *grammar.Grammar) (LL1Table, error) {
	t := LL1Table{Grammar: g, Cells: map[LL1Key][]grammar.Production{}}

	for _, p := range g.Productions {
		firstRHS, err := grammar.First(p.RHS, g)
		if err != nil {
			return LL1Table{}, fmt.Errorf("building LL(1) table: %w", err)
		}

		for _, sym := range firstRHS.Elements() {
			if grammar.IsEpsilon(sym) {
				continue
			}
			term, ok := sym.(grammar.Terminal)
			if !ok {
				continue
			}
			key := LL1Key{LHS: p.LHS, Term: term}
			t.Cells[key] = appendIfAbsent(t.Cells[key], p)
		}

		if firstRHS.Has(grammar.Epsilon) {
			followLHS, err := grammar.Follow(p.LHS, g)
			if err != nil {
				return LL1Table{}, fmt.Errorf("building LL(1) table: %w", err)
			}
			for _, sym := range followLHS.Elements() {
				term, ok := sym.(grammar.Terminal)
				if !ok {
					continue
				}
				key := LL1Key{LHS: p.LHS, Term: term}
				t.Cells[key] = appendIfAbsent(t.Cells[key], p)
			}
		}
	}

	return t, nil
}

func appendIfAbsent(prods []grammar.Production, p grammar.Production) []grammar.Production {
	for _, existing := range prods {
		if existing.Equal(p) {
			return prods
		}
	}
	return append(prods, p)
}
