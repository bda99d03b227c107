// Package table builds and represents LL(1), SLR(1), canonical-LR(1), and
// LALR(1) parsing tables from a grammar.Grammar, using the automaton
// package's item-set machinery for the three LR variants.
package table

import (
	"fmt"

	"github.com/jrnilsson/parsegen/grammar"
)

// LRActionType is the kind of entry stored in a ParsingTable's ACTION map.
type LRActionType int

const (
	LRShift LRActionType = iota
	LRReduce
	LRAccept
	LRError
)

// LRAction is one entry of a ParsingTable's ACTION map: what a shift-reduce
// parser should do when it sees a given terminal in a given state.
type LRAction struct {
	Type LRActionType

	// Production is set when Type is LRReduce: the production β the
	// parser reduces by.
	Production grammar.Production

	// State is set when Type is LRShift: the state index to shift to.
	State int
}

func (act LRAction) String() string {
	switch act.Type {
	case LRShift:
		return fmt.Sprintf("shift %d", act.State)
	case LRReduce:
		return fmt.Sprintf("reduce %s", act.Production)
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}

func (act LRAction) Equal(other LRAction) bool {
	if act.Type != other.Type {
		return false
	}
	switch act.Type {
	case LRShift:
		return act.State == other.State
	case LRReduce:
		return act.Production.Equal(other.Production)
	default:
		return true
	}
}
