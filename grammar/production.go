package grammar

import "strings"

// Production is a single rewriting rule LHS -> RHS. Order of the RHS
// matters for both equality and for the deterministic alternative ordering
// predictive descent relies on (see Grammar.ProductionsFrom).
type Production struct {
	LHS NonTerminal
	RHS []Symbol
}

// NewProduction builds a Production from a left-hand side and a sequence of
// right-hand-side symbols. An empty rhs is not the same as an
// epsilon-production; callers that mean "A -> ε" must pass []Symbol{Epsilon}
// explicitly.
func NewProduction(lhs NonTerminal, rhs ...Symbol) Production {
	rhsCopy := make([]Symbol, len(rhs))
	copy(rhsCopy, rhs)
	return Production{LHS: lhs, RHS: rhsCopy}
}

// Equal reports whether p and other have the same LHS and identical RHS
// (same symbols, same order).
func (p Production) Equal(other Production) bool {
	return p.LHS.Equal(other.LHS) && EqualSymbols(p.RHS, other.RHS)
}

// IsEpsilon reports whether p's RHS is exactly the epsilon production.
func (p Production) IsEpsilon() bool {
	return len(p.RHS) == 1 && IsEpsilon(p.RHS[0])
}

// String renders p as "LHS -> s1 s2 s3".
func (p Production) String() string {
	var sb strings.Builder
	sb.WriteString(p.LHS.String())
	sb.WriteString(" -> ")
	for i, s := range p.RHS {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}
