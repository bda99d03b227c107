package grammar

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

// Grammar is an ordered list of productions plus a distinguished start
// symbol. Productions are kept in insertion order because predictive-parse
// descent and LL(1)/LR conflict tie-breaking both depend on a stable
// ordering of alternatives (spec §4.B).
type Grammar struct {
	Start       NonTerminal
	Productions []Production
}

// New returns an empty Grammar with the given start symbol.
func New(start NonTerminal) *Grammar {
	return &Grammar{Start: start}
}

// Copy returns a grammar with an independent copy of the production list;
// the symbols themselves are immutable values so they need no deep copy.
func (g *Grammar) Copy() *Grammar {
	cp := &Grammar{Start: g.Start, Productions: make([]Production, len(g.Productions))}
	copy(cp.Productions, g.Productions)
	return cp
}

// ErrDuplicateProduction is returned by AddProduction when an identical
// production (same LHS, same RHS, same order) already exists in the
// grammar.
var ErrDuplicateProduction = fmt.Errorf("production already exists in grammar")

// AddProduction appends lhs -> rhs to the grammar. It fails with
// ErrDuplicateProduction if an identical production is already present.
func (g *Grammar) AddProduction(lhs NonTerminal, rhs []Symbol) error {
	p := NewProduction(lhs, rhs...)
	for _, existing := range g.Productions {
		if existing.Equal(p) {
			return fmt.Errorf("%w: %s", ErrDuplicateProduction, p)
		}
	}
	g.Productions = append(g.Productions, p)
	return nil
}

// ProductionsFrom returns, in insertion order, every production whose LHS
// equals lhs.
func (g *Grammar) ProductionsFrom(lhs NonTerminal) []Production {
	var out []Production
	for _, p := range g.Productions {
		if p.LHS.Equal(lhs) {
			out = append(out, p)
		}
	}
	return out
}

// NonTerminals returns every non-terminal appearing as the LHS of some
// production, in first-seen order.
func (g *Grammar) NonTerminals() []NonTerminal {
	var out []NonTerminal
	seen := map[NonTerminal]bool{}
	for _, p := range g.Productions {
		if !seen[p.LHS] {
			seen[p.LHS] = true
			out = append(out, p.LHS)
		}
	}
	return out
}

// Terminals returns every terminal appearing in some production's RHS, in
// first-seen order. Dot and Epsilon are never included.
func (g *Grammar) Terminals() []Terminal {
	var out []Terminal
	seen := map[Terminal]bool{}
	for _, p := range g.Productions {
		for _, s := range p.RHS {
			if t, ok := s.(Terminal); ok {
				if !seen[t] {
					seen[t] = true
					out = append(out, t)
				}
			}
		}
	}
	return out
}

// HasNonTerminal reports whether nt appears as the LHS of some production.
func (g *Grammar) HasNonTerminal(nt NonTerminal) bool {
	for _, p := range g.Productions {
		if p.LHS.Equal(nt) {
			return true
		}
	}
	return false
}

// Augmented returns a new grammar G' with a fresh start symbol S' and an
// added production S' -> S, where S is g's current start symbol. All of
// g's other productions are carried over unchanged, in order, followed by
// the new production (so the augmented production is always last, matching
// automaton.Item's expectation that the augmented start item is easy to
// recognize).
func (g *Grammar) Augmented() *Grammar {
	cp := g.Copy()
	newStart := g.Start.Fresh(g)
	cp.Start = newStart
	cp.Productions = append(cp.Productions, NewProduction(newStart, g.Start))
	return cp
}

// grammarDTO is a plain-data mirror of Grammar used only for binary
// (de)serialization: rezi reflects over struct fields, and Symbol is an
// interface, so productions are flattened into a format built entirely out
// of concrete, exported fields before handing them to rezi.
type grammarDTO struct {
	StartName string
	StartID   int
	Prods     []productionDTO
}

type productionDTO struct {
	LHSName string
	LHSID   int
	RHS     []symbolDTO
}

// symbolKindDTO distinguishes the four Symbol variants in the wire format.
type symbolKindDTO int

const (
	symbolKindTerminal symbolKindDTO = iota
	symbolKindNonTerminal
	symbolKindEpsilon
	symbolKindDot
)

type symbolDTO struct {
	Kind  symbolKindDTO
	Name  string
	ID    int
	IsEnd bool
}

func toSymbolDTO(s Symbol) symbolDTO {
	switch v := s.(type) {
	case Terminal:
		return symbolDTO{Kind: symbolKindTerminal, Name: v.Name, IsEnd: v.IsEnd}
	case NonTerminal:
		return symbolDTO{Kind: symbolKindNonTerminal, Name: v.Name, ID: v.ID}
	case epsilonSymbol:
		return symbolDTO{Kind: symbolKindEpsilon}
	case dotSymbol:
		return symbolDTO{Kind: symbolKindDot}
	default:
		panic(fmt.Sprintf("unreachable: unknown Symbol implementation %T", s))
	}
}

func fromSymbolDTO(d symbolDTO) (Symbol, error) {
	switch d.Kind {
	case symbolKindTerminal:
		return Terminal{Name: d.Name, IsEnd: d.IsEnd}, nil
	case symbolKindNonTerminal:
		return NonTerminal{Name: d.Name, ID: d.ID}, nil
	case symbolKindEpsilon:
		return Epsilon, nil
	case symbolKindDot:
		return Dot, nil
	default:
		return nil, fmt.Errorf("unknown symbol kind %d in encoded grammar", d.Kind)
	}
}

// MarshalBinary encodes g using the rezi reflective binary codec, the same
// one this module's teacher codebase uses to persist game state. This lets
// a host cache a grammar (and, via ParsingTable.MarshalBinary, a computed
// table) to disk instead of re-parsing a grammar definition on every run.
func (g *Grammar) MarshalBinary() ([]byte, error) {
	dto := grammarDTO{StartName: g.Start.Name, StartID: g.Start.ID}
	for _, p := range g.Productions {
		pd := productionDTO{LHSName: p.LHS.Name, LHSID: p.LHS.ID}
		for _, s := range p.RHS {
			pd.RHS = append(pd.RHS, toSymbolDTO(s))
		}
		dto.Prods = append(dto.Prods, pd)
	}
	return rezi.EncBinary(dto), nil
}

// UnmarshalBinary decodes data produced by MarshalBinary into g, replacing
// its contents.
func (g *Grammar) UnmarshalBinary(data []byte) error {
	var dto grammarDTO
	if _, err := rezi.DecBinary(data, &dto); err != nil {
		return fmt.Errorf("decoding grammar: %w", err)
	}
	g.Start = NonTerminal{Name: dto.StartName, ID: dto.StartID}
	g.Productions = g.Productions[:0]
	for _, pd := range dto.Prods {
		rhs := make([]Symbol, 0, len(pd.RHS))
		for _, sd := range pd.RHS {
			sym, err := fromSymbolDTO(sd)
			if err != nil {
				return fmt.Errorf("decoding grammar: %w", err)
			}
			rhs = append(rhs, sym)
		}
		g.Productions = append(g.Productions, Production{LHS: NonTerminal{Name: pd.LHSName, ID: pd.LHSID}, RHS: rhs})
	}
	return nil
}

// String renders the grammar as one production per line.
func (g *Grammar) String() string {
	s := ""
	for i, p := range g.Productions {
		if i > 0 {
			s += "\n"
		}
		s += p.String()
	}
	return s
}
