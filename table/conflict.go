package table

import (
	"fmt"

	"github.com/jrnilsson/parsegen/grammar"
)

// ConflictKind distinguishes the two ways two LR actions can compete for
// the same (state, terminal) ACTION table cell.
type ConflictKind int

const (
	ShiftReduceConflict ConflictKind = iota
	ReduceReduceConflict
)

// Conflict records a table-construction-time choice between two competing
// actions for the same cell: which one won, and which lost. The teacher's
// `GenerateSimpleLRParser` reports conflicts through an `ambigWarns
// []string` out-parameter instead of failing the build; this module keeps
// that same shape as a typed slice rather than raw strings so a caller can
// inspect State/Terminal/Kind programmatically, not just read prose.
type Conflict struct {
	Kind     ConflictKind
	State    int
	Terminal grammar.Terminal
	Chosen   LRAction
	Rejected LRAction
}

func (c Conflict) String() string {
	kind := "shift/reduce"
	if c.Kind == ReduceReduceConflict {
		kind = "reduce/reduce"
	}
	return fmt.Sprintf("%s conflict in state %d on %s: chose %s over %s", kind, c.State, c.Terminal, c.Chosen, c.Rejected)
}

// resolve picks a winner between two competing actions for the same
// (state, terminal) cell and records the loser as a Conflict, per spec.md
// §9's tie-break rule: shift always beats reduce; between two reduces, the
// production with the lower index in the grammar's production list wins
// (lower = earlier-declared = higher precedence by declaration order, the
// same convention yacc/bison use for unmarked grammars).
func resolve(state int, term grammar.Terminal, existing, incoming LRAction, g *grammar.Grammar) (LRAction, *Conflict) {
	if existing.Equal(incoming) {
		return existing, nil
	}

	if existing.Type == LRShift && incoming.Type == LRReduce {
		return existing, &Conflict{Kind: ShiftReduceConflict, State: state, Terminal: term, Chosen: existing, Rejected: incoming}
	}
	if existing.Type == LRReduce && incoming.Type == LRShift {
		return incoming, &Conflict{Kind: ShiftReduceConflict, State: state, Terminal: term, Chosen: incoming, Rejected: existing}
	}

	if existing.Type == LRReduce && incoming.Type == LRReduce {
		existingIdx := productionIndex(g, existing.Production)
		incomingIdx := productionIndex(g, incoming.Production)
		if incomingIdx < existingIdx {
			return incoming, &Conflict{Kind: ReduceReduceConflict, State: state, Terminal: term, Chosen: incoming, Rejected: existing}
		}
		return existing, &Conflict{Kind: ReduceReduceConflict, State: state, Terminal: term, Chosen: existing, Rejected: incoming}
	}

	// Accept always wins over anything else that reaches this point (a
	// shift/accept or reduce/accept collision should not occur in a
	// well-formed augmented grammar, but favor ACCEPT defensively).
	if existing.Type == LRAccept {
		return existing, &Conflict{Kind: ShiftReduceConflict, State: state, Terminal: term, Chosen: existing, Rejected: incoming}
	}
	return incoming, &Conflict{Kind: ShiftReduceConflict, State: state, Terminal: term, Chosen: incoming, Rejected: existing}
}

func productionIndex(g *grammar.Grammar, p grammar.Production) int {
	for i, existing := range g.Productions {
		if existing.Equal(p) {
			return i
		}
	}
	return len(g.Productions)
}
