package automaton

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/jrnilsson/parsegen/grammar"
)

// ClosureLR1 computes the LR(1) closure of C: for every item
// [A -> alpha . B beta, a] with B a non-terminal, every production
// B -> gamma contributes [B -> . gamma, b] for every terminal b in
// FIRST(beta a) — the lookahead of the item being expanded threaded through
// whatever follows B in the same item.
func ClosureLR1(g *grammar.Grammar, C ItemSet) (ItemSet, error) {
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

		seq := append(append([]grammar.Symbol{}, item.Beta()...), item.Lookahead)
		lookaheads, err := grammar.First(seq, g)
		if err != nil {
			return ItemSet{}, err
		}

		for _, prod := range g.ProductionsFrom(bnt) {
			for _, la := range lookaheads.Elements() {
				t, ok := la.(grammar.Terminal)
				if !ok {
					continue
				}
				newItem := NewLR1Item(prod.LHS, WithDotAtStart(prod), t)
				if !out.Has(newItem) {
					out.Add(newItem)
					worklist = append(worklist, newItem)
				}
			}
		}
	}

	return out, nil
}

// GotoLR1 computes GOTO(C, x) for an LR(1) item set: every item in
// closure(C) whose dot immediately precedes x has its dot advanced past x
// (carrying its lookahead unchanged), and the result is closed.
func GotoLR1(g *grammar.Grammar, C ItemSet, x grammar.Symbol) (ItemSet, error) {
	closed, err := ClosureLR1(g, C)
	if err != nil {
		return ItemSet{}, err
	}

	moved := NewItemSet()
	for _, item := range closed.Items() {
		after, ok := item.AfterDot()
		if !ok || !after.Equal(x) {
			continue
		}
		moved.Add(item.Advanced(x))
	}
	return ClosureLR1(g, moved)
}

// CanonicalCollectionLR1 constructs the LR(1) canonical collection for g's
// augmented grammar, starting from CLOSURE({[S' -> . S, $]}) and exploring
// GOTO against every symbol until no new states appear. As in
// CanonicalCollectionLR0, the worklist is an emirpasic/gods treeset keyed
// by each state's Key string for deterministic traversal order.
func CanonicalCollectionLR1(g *grammar.Grammar) (*grammar.Grammar, CanonicalSet, error) {
	ag, startProd := Augmented(g)

	startItem := NewLR1Item(ag.Start, WithDotAtStart(startProd), grammar.End)
	start, err := ClosureLR1(ag, ItemSetOf(startItem))
	if err != nil {
		return nil, CanonicalSet{}, err
	}

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
			next, err := GotoLR1(ag, state, sym)
			if err != nil {
				return nil, CanonicalSet{}, err
			}
			if next.Len() == 0 || C.Has(next) {
				continue
			}
			C.Add(next)
			byKey[next.Key()] = next
			worklist.Add(next.Key())
		}
	}

	return ag, C, nil
}
