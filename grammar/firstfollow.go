package grammar

import (
	"fmt"

	"github.com/jrnilsson/parsegen/internal/util"
)

// SymbolSet is an unordered collection of symbols, as produced by First and
// Follow. It is a plain util.Set so callers can use Has/Union/Elements
// directly without a parallel API.
type SymbolSet = util.Set[Symbol]

// ErrBadFirstFollowArg is returned by First when its argument (or an element
// of a []Symbol argument) is not a Terminal, a NonTerminal, or Epsilon; Dot
// is rejected too.
var ErrBadFirstFollowArg = fmt.Errorf("bad argument to First: must be a Symbol or []Symbol")

// First computes FIRST(s) for s a Symbol (Terminal, NonTerminal, or
// Epsilon) or a []Symbol sequence. The recursion carries an explicit
// in-progress set so that a non-terminal whose own productions are
// (directly or indirectly) left-recursive contributes the empty set to
// itself rather than looping forever; the fixed point is still reached
// because every other alternative for that non-terminal is still visited.
func First(s any, g *Grammar) (SymbolSet, error) {
	inProgress := util.NewSet[Symbol]()
	return firstRec(s, g, inProgress)
}

func firstRec(s any, g *Grammar, inProgress SymbolSet) (SymbolSet, error) {
	switch v := s.(type) {
	case Terminal:
		return firstOfSingle(v, inProgress)
	case NonTerminal:
		return firstOfNonTerminal(v, g, inProgress)
	case epsilonSymbol:
		return firstOfSingle(Epsilon, inProgress)
	case []Symbol:
		return firstOfSequence(v, g, inProgress)
	default:
		return nil, fmt.Errorf("%w: got %T", ErrBadFirstFollowArg, s)
	}
}

func firstOfSingle(s Symbol, inProgress SymbolSet) (SymbolSet, error) {
	if inProgress.Has(s) {
		return util.NewSet[Symbol](), nil
	}
	out := util.NewSet[Symbol]()
	out.Add(s)
	return out, nil
}

func firstOfNonTerminal(nt NonTerminal, g *Grammar, inProgress SymbolSet) (SymbolSet, error) {
	if inProgress.Has(nt) {
		return util.NewSet[Symbol](), nil
	}
	inProgress.Add(nt)
	defer inProgress.Remove(nt)

	out := util.NewSet[Symbol]()
	for _, p := range g.ProductionsFrom(nt) {
		sub, err := firstOfSequence(p.RHS, g, inProgress)
		if err != nil {
			return nil, err
		}
		out.AddAll(sub)
	}
	return out, nil
}

func firstOfSequence(seq []Symbol, g *Grammar, inProgress SymbolSet) (SymbolSet, error) {
	out := util.NewSet[Symbol]()
	for _, sym := range seq {
		sub, err := firstRec(sym, g, inProgress)
		if err != nil {
			return nil, err
		}
		nullable := sub.Has(Epsilon)
		sub.Remove(Epsilon)
		out.AddAll(sub)
		if !nullable {
			return out, nil
		}
	}
	out.Add(Epsilon)
	return out, nil
}

// Follow computes FOLLOW(nt): the set of terminals (and the end-of-input
// sentinel) that can appear immediately after nt in some derivation from
// the grammar's start symbol. The same in-progress guard used by First
// prevents infinite recursion through mutually-following non-terminals.
func Follow(nt NonTerminal, g *Grammar) (SymbolSet, error) {
	inProgress := util.NewSet[NonTerminal]()
	return followRec(nt, g, inProgress)
}

func followRec(nt NonTerminal, g *Grammar, inProgress util.Set[NonTerminal]) (SymbolSet, error) {
	if inProgress.Has(nt) {
		return util.NewSet[Symbol](), nil
	}
	inProgress.Add(nt)
	defer inProgress.Remove(nt)

	out := util.NewSet[Symbol]()
	if nt.Equal(g.Start) {
		out.Add(End)
	}

	for _, p := range g.Productions {
		for i, sym := range p.RHS {
			if !sym.Equal(nt) {
				continue
			}

			rest := p.RHS[i+1:]
			restFirst, err := First(rest, g)
			if err != nil {
				return nil, err
			}
			for _, f := range restFirst.Elements() {
				if !IsEpsilon(f) {
					out.Add(f)
				}
			}

			if i == len(p.RHS)-1 || restFirst.Has(Epsilon) {
				lhsFollow, err := followRec(p.LHS, g, inProgress)
				if err != nil {
					return nil, err
				}
				out.AddAll(lhsFollow)
			}
		}
	}

	return out, nil
}
