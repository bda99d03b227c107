// Package automaton builds the LR item sets and canonical collections that
// the table package's SLR(1), canonical-LR(1), and LALR(1) builders walk to
// produce a parsing table. It has no notion of parsing tables itself; it
// only knows how to compute CLOSURE, GOTO, and the fixed point of those two
// operations over a grammar.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jrnilsson/parsegen/grammar"
)

// LookaheadKind distinguishes the three item flavors spec.md §4.E
// describes: an LR(0) item carries no lookahead at all, an LR(1) item
// carries exactly one terminal, and a LALR(1) merged item carries a
// non-empty set of terminals.
type LookaheadKind int

const (
	LookaheadNone LookaheadKind = iota
	LookaheadOne
	LookaheadSet
)

// Item is a production with a dot marking a parse position, optionally
// carrying a lookahead. RHS always contains exactly one grammar.Dot at its
// current position; LHS/RHS/lookahead together determine equality and
// hashing, with the set-of-terminals lookahead compared order-invariantly.
type Item struct {
	LHS    grammar.NonTerminal
	RHS    []grammar.Symbol
	LAKind LookaheadKind

	// Lookahead holds the single terminal when LAKind == LookaheadOne.
	Lookahead grammar.Terminal

	// Lookaheads holds the terminal set when LAKind == LookaheadSet. It is
	// never empty for a well-formed merged item.
	Lookaheads grammar.SymbolSet
}

// NewLR0Item builds a dotless-lookahead item for lhs -> rhs, where rhs
// already contains grammar.Dot at the desired position.
func NewLR0Item(lhs grammar.NonTerminal, rhs []grammar.Symbol) Item {
	return Item{LHS: lhs, RHS: append([]grammar.Symbol{}, rhs...), LAKind: LookaheadNone}
}

// NewLR1Item builds a single-terminal-lookahead item.
func NewLR1Item(lhs grammar.NonTerminal, rhs []grammar.Symbol, la grammar.Terminal) Item {
	return Item{LHS: lhs, RHS: append([]grammar.Symbol{}, rhs...), LAKind: LookaheadOne, Lookahead: la}
}

// NewMergedItem builds a set-of-terminals-lookahead item, as produced by
// LALR(1) core merging.
func NewMergedItem(lhs grammar.NonTerminal, rhs []grammar.Symbol, las grammar.SymbolSet) Item {
	return Item{LHS: lhs, RHS: append([]grammar.Symbol{}, rhs...), LAKind: LookaheadSet, Lookaheads: las.Copy()}
}

// Core returns i with its lookahead erased (LAKind set to LookaheadNone),
// the representation LALR(1) core-merging groups states by.
func (i Item) Core() Item {
	return Item{LHS: i.LHS, RHS: i.RHS, LAKind: LookaheadNone}
}

// AfterDot returns the symbol immediately following the dot in i's RHS, and
// false if the dot is in the final position.
func (i Item) AfterDot() (grammar.Symbol, bool) {
	for idx, s := range i.RHS {
		if grammar.IsDot(s) {
			if idx == len(i.RHS)-1 {
				return nil, false
			}
			return i.RHS[idx+1], true
		}
	}
	panic("item has no dot in its RHS")
}

// Advanced returns a copy of i with the dot moved one position to the
// right, past the symbol x that must currently follow the dot. It panics
// if x does not follow the dot; callers are expected to have checked
// AfterDot first.
func (i Item) Advanced(x grammar.Symbol) Item {
	for idx, s := range i.RHS {
		if grammar.IsDot(s) {
			if idx == len(i.RHS)-1 || !i.RHS[idx+1].Equal(x) {
				panic("Advanced: x does not follow the dot")
			}
			rhs := make([]grammar.Symbol, 0, len(i.RHS))
			rhs = append(rhs, i.RHS[:idx]...)
			rhs = append(rhs, x, grammar.Dot)
			rhs = append(rhs, i.RHS[idx+2:]...)
			return Item{LHS: i.LHS, RHS: rhs, LAKind: i.LAKind, Lookahead: i.Lookahead, Lookaheads: i.Lookaheads}
		}
	}
	panic("item has no dot in its RHS")
}

// Beta returns the symbols of i's RHS after both the dot and the symbol
// immediately following it — the "beta" in the classic
// [A -> alpha . B beta, a] LR(1) closure step.
func (i Item) Beta() []grammar.Symbol {
	for idx, s := range i.RHS {
		if grammar.IsDot(s) {
			if idx+2 >= len(i.RHS) {
				return nil
			}
			return i.RHS[idx+2:]
		}
	}
	panic("item has no dot in its RHS")
}

// Equal reports whether i and other denote the same item: same LHS, same
// RHS, and equal lookaheads (set comparison for LookaheadSet, regardless of
// iteration order).
func (i Item) Equal(other Item) bool {
	if !i.LHS.Equal(other.LHS) || i.LAKind != other.LAKind {
		return false
	}
	if !grammar.EqualSymbols(i.RHS, other.RHS) {
		return false
	}
	switch i.LAKind {
	case LookaheadNone:
		return true
	case LookaheadOne:
		return i.Lookahead.Equal(other.Lookahead)
	case LookaheadSet:
		if i.Lookaheads.Len() != other.Lookaheads.Len() {
			return false
		}
		for _, t := range i.Lookaheads.Elements() {
			if !other.Lookaheads.Has(t) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Key renders a canonical string for i suitable for use as a map key: two
// items with Equal == true always produce the same Key, including when
// their lookahead sets were built in different orders.
func (i Item) Key() string {
	var sb strings.Builder
	sb.WriteString(i.LHS.String())
	sb.WriteByte('|')
	for _, s := range i.RHS {
		sb.WriteString(s.String())
		sb.WriteByte(' ')
	}
	sb.WriteByte('|')
	switch i.LAKind {
	case LookaheadNone:
		sb.WriteString("none")
	case LookaheadOne:
		sb.WriteString("one:")
		sb.WriteString(i.Lookahead.String())
	case LookaheadSet:
		elems := i.Lookaheads.StringElements()
		sort.Strings(elems)
		sb.WriteString("set:")
		sb.WriteString(strings.Join(elems, ","))
	}
	return sb.String()
}

func (i Item) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(i.LHS.String())
	sb.WriteString(" ->")
	for _, s := range i.RHS {
		sb.WriteByte(' ')
		sb.WriteString(s.String())
	}
	switch i.LAKind {
	case LookaheadOne:
		sb.WriteString(", ")
		sb.WriteString(i.Lookahead.String())
	case LookaheadSet:
		sb.WriteString(", ")
		sb.WriteString(i.Lookaheads.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// ItemSet is an unordered set of Items, equal by member equality. The
// zero value is not usable; construct with NewItemSet.
type ItemSet struct {
	items map[string]Item
}

// NewItemSet returns an empty ItemSet.
func NewItemSet() ItemSet {
	return ItemSet{items: map[string]Item{}}
}

// ItemSetOf builds an ItemSet from a list of items.
func ItemSetOf(items ...Item) ItemSet {
	s := NewItemSet()
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts item into s, replacing any existing item with the same Key.
// Key includes the lookahead, so items that differ only in their lookahead
// (or lookahead set) are kept side by side.
func (s ItemSet) Add(item Item) {
	s.items[item.Key()] = item
}

// Remove deletes item from s, if present.
func (s ItemSet) Remove(item Item) {
	delete(s.items, item.Key())
}

// Has reports whether an item equal to item is a member of s.
func (s ItemSet) Has(item Item) bool {
	_, ok := s.items[item.Key()]
	return ok
}

// Len returns the number of items in s.
func (s ItemSet) Len() int {
	return len(s.items)
}

// Items returns the members of s sorted by Key, for deterministic
// iteration.
func (s ItemSet) Items() []Item {
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Item, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.items[k])
	}
	return out
}

// Copy returns an independent copy of s.
func (s ItemSet) Copy() ItemSet {
	cp := NewItemSet()
	for k, v := range s.items {
		cp.items[k] = v
	}
	return cp
}

// Core returns a new ItemSet containing the Core() of every item in s —
// the representation LALR(1) merging groups canonical-LR(1) states by.
func (s ItemSet) Core() ItemSet {
	cp := NewItemSet()
	for _, it := range s.Items() {
		cp.Add(it.Core())
	}
	return cp
}

// Key renders a canonical string for s, built from the sorted Keys of its
// members, suitable for use as a CanonicalSet map key.
func (s ItemSet) Key() string {
	items := s.Items()
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key())
	}
	return strings.Join(keys, "\x00")
}

// Equal reports whether s and other have exactly the same members.
func (s ItemSet) Equal(other ItemSet) bool {
	return s.Key() == other.Key()
}

func (s ItemSet) String() string {
	parts := make([]string, 0, len(s.items))
	for _, it := range s.Items() {
		parts = append(parts, it.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// CanonicalSet is a set of ItemSets — the LR automaton's states before
// numbering. It also records the order in which states were first Added,
// since spec.md §5 requires state indices to follow worklist discovery
// order rather than any incidental sort.
type CanonicalSet struct {
	sets  map[string]ItemSet
	order []string
}

// NewCanonicalSet returns an empty CanonicalSet.
func NewCanonicalSet() CanonicalSet {
	return CanonicalSet{sets: map[string]ItemSet{}}
}

// Add inserts items into c, if an equal ItemSet is not already present.
func (c *CanonicalSet) Add(items ItemSet) {
	key := items.Key()
	if _, ok := c.sets[key]; !ok {
		c.order = append(c.order, key)
	}
	c.sets[key] = items
}

// Has reports whether an ItemSet equal to items is a member of c.
func (c CanonicalSet) Has(items ItemSet) bool {
	_, ok := c.sets[items.Key()]
	return ok
}

// Len returns the number of states in c.
func (c CanonicalSet) Len() int {
	return len(c.sets)
}

// States returns the members of c, sorted by Key, for deterministic
// iteration where discovery order doesn't matter (e.g. counting, or
// debug dumps).
func (c CanonicalSet) States() []ItemSet {
	keys := make([]string, 0, len(c.sets))
	for k := range c.sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]ItemSet, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.sets[k])
	}
	return out
}

// DiscoveryOrder returns the members of c in the order they were first
// Added — the order CanonicalCollectionLR0/CanonicalCollectionLR1's
// worklists discovered them in, with the start state always first. Table
// builders number states from this, not States(), per spec.md §5 ("other
// state indices follow the order in which states are first discovered by
// the worklist walk").
func (c CanonicalSet) DiscoveryOrder() []ItemSet {
	out := make([]ItemSet, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.sets[k])
	}
	return out
}

// Augmented returns the augmented grammar for g (via grammar.Grammar's own
// Augmented, component B) along with the single production the new start
// symbol produces — a convenience used by both ClosureLR0/ClosureLR1
// callers to build the seed item without re-deriving it.
func Augmented(g *grammar.Grammar) (*grammar.Grammar, grammar.Production) {
	ag := g.Augmented()
	prods := ag.ProductionsFrom(ag.Start)
	if len(prods) != 1 {
		panic(fmt.Sprintf("augmented grammar start symbol %s has %d productions, want 1", ag.Start, len(prods)))
	}
	return ag, prods[0]
}

// WithDotAtStart returns prod's RHS with a leading Dot, the shape every
// seed and closure-expanded item's RHS takes.
func WithDotAtStart(prod grammar.Production) []grammar.Symbol {
	rhs := make([]grammar.Symbol, 0, len(prod.RHS)+1)
	rhs = append(rhs, grammar.Dot)
	rhs = append(rhs, prod.RHS...)
	return rhs
}
