package table

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/rosed"
	"github.com/jrnilsson/parsegen/automaton"
	"github.com/jrnilsson/parsegen/grammar"
)

// ParsingTable is the output of the SLR(1), canonical-LR(1), and LALR(1)
// builders: a numbered set of automaton states plus the ACTION and GOTO
// maps over them. States is indexed from 0, with state 0 always the
// start state, per spec.md §3.
type ParsingTable struct {
	Grammar *grammar.Grammar
	States  map[int]automaton.ItemSet
	Action  map[StateTerm]LRAction
	Goto    map[StateNonTerm]int

	// Conflicts records every shift/reduce or reduce/reduce resolution
	// made while filling Action, in the order encountered. An empty slice
	// means the grammar was unambiguous for this table type.
	Conflicts []Conflict
}

// StateTerm is an ACTION-table key.
type StateTerm struct {
	State int
	Term  grammar.Terminal
}

// StateNonTerm is a GOTO-table key.
type StateNonTerm struct {
	State int
	NT    grammar.NonTerminal
}

func newParsingTable(g *grammar.Grammar) *ParsingTable {
	return &ParsingTable{
		Grammar: g,
		States:  map[int]automaton.ItemSet{},
		Action:  map[StateTerm]LRAction{},
		Goto:    map[StateNonTerm]int{},
	}
}

// setAction installs act for (state, term), resolving any conflict with an
// action already present via resolve and recording it in pt.Conflicts.
func (pt *ParsingTable) setAction(state int, term grammar.Terminal, act LRAction) {
	key := StateTerm{State: state, Term: term}
	existing, ok := pt.Action[key]
	if !ok {
		pt.Action[key] = act
		return
	}
	winner, conflict := resolve(state, term, existing, act, pt.Grammar)
	pt.Action[key] = winner
	if conflict != nil {
		pt.Conflicts = append(pt.Conflicts, *conflict)
	}
}

// String renders the table as one row per state, columns "A:<terminal>"
// for ACTION and "G:<non-terminal>" for GOTO, using rosed.InsertTableOpts
// the same way the teacher's parse/slr.go, parse/clr1.go, and
// parse/lalr.go render their own dumps.
func (pt *ParsingTable) String() string {
	stateIdxs := make([]int, 0, len(pt.States))
	for i := range pt.States {
		stateIdxs = append(stateIdxs, i)
	}
	sort.Ints(stateIdxs)

	terms := pt.Grammar.Terminals()
	terms = append(terms, grammar.End)
	nts := pt.Grammar.NonTerminals()

	headers := []string{"S", "|"}
	for _, t := range terms {
		headers = append(headers, fmt.Sprintf("A:%s", t))
	}
	headers = append(headers, "|")
	for _, nt := range nts {
		headers = append(headers, fmt.Sprintf("G:%s", nt))
	}

	data := [][]string{headers}

	for _, i := range stateIdxs {
		row := []string{fmt.Sprintf("%d", i), "|"}
		for _, t := range terms {
			cell := ""
			if act, ok := pt.Action[StateTerm{State: i, Term: t}]; ok {
				switch act.Type {
				case LRShift:
					cell = fmt.Sprintf("s%d", act.State)
				case LRReduce:
					cell = fmt.Sprintf("r%s", act.Production)
				case LRAccept:
					cell = "acc"
				}
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nts {
			cell := ""
			if s, ok := pt.Goto[StateNonTerm{State: i, NT: nt}]; ok {
				cell = fmt.Sprintf("%d", s)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// ptDTO is a plain-data mirror of ParsingTable for binary serialization:
// automaton.ItemSet and the Symbol-keyed maps aren't directly reflectable,
// so they're flattened to concrete slices first.
type ptDTO struct {
	Actions []actionDTO
	Gotos   []gotoDTO
}

type actionDTO struct {
	State     int
	Term      string
	TermEnd   bool
	Type      int
	ProdLHS   string
	ProdLHSID int
	ProdRHS   []symRepr
	ShiftTo   int
}

// symRepr is a self-contained, round-trippable encoding of a grammar
// symbol, used only by actionDTO (the table package has no business
// reaching into grammar's own unexported symbolDTO).
type symRepr struct {
	Kind int // 0 = Terminal, 1 = NonTerminal, 2 = Epsilon
	Name string
	ID   int
}

func toSymRepr(s grammar.Symbol) symRepr {
	switch v := s.(type) {
	case grammar.Terminal:
		return symRepr{Kind: 0, Name: v.Name}
	case grammar.NonTerminal:
		return symRepr{Kind: 1, Name: v.Name, ID: v.ID}
	default:
		return symRepr{Kind: 2}
	}
}

func fromSymRepr(r symRepr) grammar.Symbol {
	switch r.Kind {
	case 0:
		return grammar.NewTerminal(r.Name)
	case 1:
		return grammar.NonTerminal{Name: r.Name, ID: r.ID}
	default:
		return grammar.Epsilon
	}
}

type gotoDTO struct {
	State int
	NT    string
	NTID  int
	To    int
}

// MarshalBinary encodes the ACTION and GOTO tables (but not the underlying
// automaton states, which are reconstructible from Grammar + table type)
// using rezi, matching grammar.Grammar's own serialization approach.
func (pt *ParsingTable) MarshalBinary() ([]byte, error) {
	dto := ptDTO{}
	for key, act := range pt.Action {
		a := actionDTO{
			State:   key.State,
			Term:    key.Term.Name,
			TermEnd: key.Term.IsEnd,
			Type:    int(act.Type),
			ShiftTo: act.State,
		}
		if act.Type == LRReduce {
			a.ProdLHS = act.Production.LHS.Name
			a.ProdLHSID = act.Production.LHS.ID
			for _, s := range act.Production.RHS {
				a.ProdRHS = append(a.ProdRHS, toSymRepr(s))
			}
		}
		dto.Actions = append(dto.Actions, a)
	}
	for key, to := range pt.Goto {
		dto.Gotos = append(dto.Gotos, gotoDTO{State: key.State, NT: key.NT.Name, NTID: key.NT.ID, To: to})
	}
	return rezi.EncBinary(dto), nil
}

// UnmarshalBinary decodes data produced by MarshalBinary into pt's Action
// and Goto maps. It does not attempt to repopulate States or Grammar; a
// caller that needs those should rebuild the table from the grammar
// instead of deserializing, or keep the Grammar/States around separately.
func (pt *ParsingTable) UnmarshalBinary(data []byte) error {
	var dto ptDTO
	if _, err := rezi.DecBinary(data, &dto); err != nil {
		return fmt.Errorf("decoding parsing table: %w", err)
	}
	pt.Action = map[StateTerm]LRAction{}
	pt.Goto = map[StateNonTerm]int{}
	for _, a := range dto.Actions {
		key := StateTerm{State: a.State, Term: grammar.Terminal{Name: a.Term, IsEnd: a.TermEnd}}
		act := LRAction{Type: LRActionType(a.Type), State: a.ShiftTo}
		if act.Type == LRReduce {
			rhs := make([]grammar.Symbol, 0, len(a.ProdRHS))
			for _, r := range a.ProdRHS {
				rhs = append(rhs, fromSymRepr(r))
			}
			act.Production = grammar.NewProduction(grammar.NonTerminal{Name: a.ProdLHS, ID: a.ProdLHSID}, rhs...)
		}
		pt.Action[key] = act
	}
	for _, gd := range dto.Gotos {
		pt.Goto[StateNonTerm{State: gd.State, NT: grammar.NonTerminal{Name: gd.NT, ID: gd.NTID}}] = gd.To
	}
	return nil
}
