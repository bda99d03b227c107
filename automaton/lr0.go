package automaton

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/jrnilsson/parsegen/grammar"
)

// ClosureLR0 computes the LR(0) closure of C: repeatedly, for every item
// [A -> alpha . B beta] in the set with B a non-terminal, every production
// B -> gamma contributes the item [B -> . gamma] until no more items can be
// added. Grounded directly on the teacher's reference implementation's
// worklist shape (pop an item, expand it, push anything new).
func ClosureLR0(g *grammar.Grammar, C ItemSet) ItemSet {
	out := C.Copy()
	worklist := out.Items()

	for len(worklist) > 0 {
		item := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		b, ok := item.AfterDot()
		if !ok || !grammar.IsNonTerminal(b) {
			continue
		}
		bnt := b.(grammar.NonTerminal)

		for _, prod := range g.ProductionsFrom(bnt) {
			newItem := NewLR0Item(prod.LHS, WithDotAtStart(prod))
			if !out.Has(newItem) {
				out.Add(newItem)
				worklist = append(worklist, newItem)
			}
		}
	}

	return out
}

// GotoLR0 computes GOTO(C, x): every item in closure(C) whose dot
// immediately precedes x has its dot advanced past x, and the resulting
// set is closed.
func GotoLR0(g *grammar.Grammar, C ItemSet, x grammar.Symbol) ItemSet {
	moved := NewItemSet()
	for _, item := range ClosureLR0(g, C).Items() {
		after, ok := item.AfterDot()
		if !ok || !after.Equal(x) {
			continue
		}
		moved.Add(item.Advanced(x))
	}
	return ClosureLR0(g, moved)
}

// CanonicalCollectionLR0 constructs the LR(0) canonical collection for g's
// augmented grammar: starting from CLOSURE({[S' -> . S]}), it repeatedly
// computes GOTO against every terminal and non-terminal of the (augmented)
// grammar until no new states are discovered. The worklist is a
// emirpasic/gods treeset keyed by each state's canonical Key string, so the
// pop order — and therefore state-discovery order before final numbering —
// is deterministic across runs, independent of Go map iteration.
func CanonicalCollectionLR0(g *grammar.Grammar) (*grammar.Grammar, CanonicalSet) {
	ag, startProd := Augmented(g)

	startItem := NewLR0Item(ag.Start, WithDotAtStart(startProd))
	start := ClosureLR0(ag, ItemSetOf(startItem))

	C := NewCanonicalSet()
	C.Add(start)

	byKey := map[string]ItemSet{start.Key(): start}
	worklist := treeset.NewWith(utils.StringComparator)
	worklist.Add(start.Key())

	symbols := allSymbols(ag)

	for !worklist.Empty() {
		values := worklist.Values()
		key := values[0].(string)
		worklist.Remove(key)
		state := byKey[key]

		for _, sym := range symbols {
			next := GotoLR0(ag, state, sym)
			if next.Len() == 0 || C.Has(next) {
				continue
			}
			C.Add(next)
			byKey[next.Key()] = next
			worklist.Add(next.Key())
		}
	}

	return ag, C
}

// allSymbols returns every terminal and non-terminal of g, in a stable
// order (terminals first, then non-terminals, each in first-seen order) —
// the set GOTO is tried against while building a canonical collection.
func allSymbols(g *grammar.Grammar) []grammar.Symbol {
	var out []grammar.Symbol
	for _, t := range g.Terminals() {
		out = append(out, t)
	}
	for _, nt := range g.NonTerminals() {
		out = append(out, nt)
	}
	return out
}
