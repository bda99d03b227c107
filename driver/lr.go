package driver

import (
	"fmt"
	"sort"

	"github.com/jrnilsson/parsegen/grammar"
	"github.com/jrnilsson/parsegen/internal/util"
	"github.com/jrnilsson/parsegen/table"
)

// LRDriver parses a token stream bottom-up against a table.ParsingTable,
// implementing Algorithm 4.44, "LR-parsing algorithm", from the Dragon Book.
type LRDriver struct {
	Table *table.ParsingTable
}

// NewLRDriver returns an LRDriver over an already-built parsing table. The
// table may have been built with BuildSLR1, BuildCLR1, or BuildLALR1; the
// driver itself is oblivious to which.
func NewLRDriver(t *table.ParsingTable) LRDriver {
	return LRDriver{Table: t}
}

// Parse drives a shift-reduce parse of stream, returning the resulting parse
// tree rooted at the grammar's (unaugmented) start symbol.
func (lr LRDriver) Parse(stream TokenStream) (ParseTree, error) {
	stateStack := util.Stack[int]{Of: []int{0}}

	tokenBuffer := util.Stack[Token]{}
	subTreeRoots := util.Stack[*ParseTree]{}

	a := stream.Next()

	for {
		s := stateStack.Peek()

		term := grammar.NewTerminal(a.Terminal())
		if a.Terminal() == grammar.End.Name {
			term = grammar.End
		}

		act, ok := lr.Table.Action[table.StateTerm{State: s, Term: term}]
		if !ok {
			act = table.LRAction{Type: table.LRError}
		}

		switch act.Type {
		case table.LRShift:
			tokenBuffer.Push(a)
			stateStack.Push(act.State)
			a = stream.Next()

		case table.LRReduce:
			prod := act.Production

			// No table builder ever emits a REDUCE whose production RHS is
			// [Epsilon] (original_source's after_dot/isinstance(A, Terminal)
			// split never special-cases it either), so unlike ll1.go's
			// expansion loop this one doesn't skip Epsilon children — there
			// is currently nothing that would exercise that path.
			node := &ParseTree{Symbol: prod.LHS}
			for i := len(prod.RHS) - 1; i >= 0; i-- {
				sym := prod.RHS[i]
				var child *ParseTree
				if grammar.IsTerminal(sym) {
					tok := tokenBuffer.Pop()
					child = &ParseTree{Symbol: sym, Source: tok}
				} else {
					child = subTreeRoots.Pop()
				}
				node.Children = append([]*ParseTree{child}, node.Children...)
			}
			subTreeRoots.Push(node)

			for i := 0; i < len(prod.RHS); i++ {
				stateStack.Pop()
			}

			t := stateStack.Peek()
			toState, ok := lr.Table.Goto[table.StateNonTerm{State: t, NT: prod.LHS}]
			if !ok {
				return ParseTree{}, fmt.Errorf("%w: no transition from state %d on %s", ErrSyntax, t, prod.LHS)
			}
			stateStack.Push(toState)

		case table.LRAccept:
			pt := subTreeRoots.Pop()
			return *pt, nil

		case table.LRError:
			return ParseTree{}, fmt.Errorf("%w: unexpected %q; expected %s", ErrSyntax, a.Lexeme(), lr.expectedString(s))
		}
	}
}

// expectedString lists the terminals that have an ACTION entry in state,
// sorted by name, each preceded by util.ArticleFor's article and joined by
// util.MakeTextList, e.g. "a ( and a )".
func (lr LRDriver) expectedString(state int) string {
	var names []string
	for st := range lr.Table.Action {
		if st.State == state {
			names = append(names, st.Term.String())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return "nothing (malformed table)"
	}

	worded := make([]string, len(names))
	for i, name := range names {
		worded[i] = util.ArticleFor(name, false) + " " + name
	}
	return util.MakeTextList(worded)
}
