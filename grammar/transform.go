package grammar

// EliminateLeftRecursion returns a copy of g with all left recursion
// removed: indirect left recursion is first converted to direct left
// recursion by substitution, then every direct left recursion
//
//	A -> A a1 | A a2 | ... | b1 | b2 | ...
//
// is rewritten, in the textbook (Aho/Sethi/Ullman) form, to
//
//	A  -> b1 A' | b2 A' | ...
//	A' -> a1 A' | a2 A' | ε
//
// using a fresh non-terminal A' for each recursive A. The ordering of
// non-terminals used for the indirect-to-direct substitution pass is the
// grammar's own NonTerminals() order, matching the textbook algorithm's
// requirement that non-terminals be processed in a fixed order A1..An with
// substitution only ever expanding Ai in terms of some Aj, j < i.
func EliminateLeftRecursion(g *Grammar) *Grammar {
	out := g.Copy()
	order := out.NonTerminals()

	expand := func(lhs, target NonTerminal) {
		targetProds := out.ProductionsFrom(target)
		var rewritten []Production
		for _, p := range out.Productions {
			if p.LHS.Equal(lhs) && len(p.RHS) > 0 && p.RHS[0].Equal(target) {
				for _, q := range targetProds {
					rhs := append(append([]Symbol{}, q.RHS...), p.RHS[1:]...)
					rewritten = append(rewritten, NewProduction(lhs, rhs...))
				}
			} else {
				rewritten = append(rewritten, p)
			}
		}
		out.Productions = rewritten
	}

	for i := range order {
		for j := 0; j < i; j++ {
			for {
				found := false
				for _, p := range out.ProductionsFrom(order[i]) {
					if len(p.RHS) > 0 && p.RHS[0].Equal(order[j]) {
						expand(order[i], order[j])
						found = true
						break
					}
				}
				if !found {
					break
				}
			}
		}
	}

	directLHS := map[NonTerminal]bool{}
	for _, p := range out.Productions {
		if len(p.RHS) > 0 && p.RHS[0].Equal(p.LHS) {
			directLHS[p.LHS] = true
		}
	}

	var rewritten []Production
	newTails := map[NonTerminal]bool{}
	for _, p := range out.Productions {
		if directLHS[p.LHS] {
			continue
		}
		rewritten = append(rewritten, p)
	}

	for _, a := range order {
		recursive := out.ProductionsFrom(a)
		var directs, others []Production
		for _, p := range recursive {
			if len(p.RHS) > 0 && p.RHS[0].Equal(a) {
				directs = append(directs, p)
			} else {
				others = append(others, p)
			}
		}
		if len(directs) == 0 {
			continue
		}

		tail := a.Fresh(out)
		for {
			collision := false
			for existing := range newTails {
				if existing.Equal(tail) {
					collision = true
					break
				}
			}
			if !collision {
				break
			}
			tail = NonTerminal{Name: tail.Name, ID: tail.ID + 1}
		}
		newTails[tail] = true

		for _, p := range others {
			rhs := append(append([]Symbol{}, p.RHS...), tail)
			rewritten = append(rewritten, NewProduction(a, rhs...))
		}
		for _, p := range directs {
			rhs := append(append([]Symbol{}, p.RHS[1:]...), tail)
			rewritten = append(rewritten, NewProduction(tail, rhs...))
		}
		rewritten = append(rewritten, NewProduction(tail, Epsilon))
	}

	out.Productions = dedupeProductions(rewritten)
	return out
}

func dedupeProductions(prods []Production) []Production {
	var out []Production
	for _, p := range prods {
		dup := false
		for _, existing := range out {
			if existing.Equal(p) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// LeftFactor returns a copy of g with every non-terminal's alternatives
// left-factored: whenever two or more productions from the same
// non-terminal share a common prefix of symbols, that prefix is factored
// out into a production to a fresh non-terminal, and the original
// alternatives are rewritten as that fresh non-terminal's productions on
// their remaining suffixes (ε if a suffix is empty). The rewrite is
// applied as a fixed point: after one non-terminal is factored the whole
// pass restarts, since factoring can itself introduce new common prefixes
// (e.g. multi-level factoring for more than two shared symbols).
func LeftFactor(g *Grammar) *Grammar {
	out := g.Copy()
	for factorOneNonTerminal(out) {
	}
	return out
}

func factorOneNonTerminal(g *Grammar) bool {
	for _, nt := range g.NonTerminals() {
		if factorOneSymbol(g, nt) {
			return true
		}
	}
	return false
}

func factorOneSymbol(g *Grammar, nt NonTerminal) bool {
	prods := g.ProductionsFrom(nt)
	for i := range prods {
		key := prods[i].RHS
		group := []int{i}
		minPrefix := len(key)

		for j := i + 1; j < len(prods); j++ {
			prefix := longestCommonPrefix(key, prods[j].RHS)
			if len(prefix) == 0 {
				continue
			}
			if len(prefix) < minPrefix {
				minPrefix = len(prefix)
			}
			group = append(group, j)
		}

		if len(group) <= 1 {
			continue
		}

		newLHS := nt.Fresh(g)
		prefix := append([]Symbol{}, key[:minPrefix]...)

		var rewritten []Production
		removed := map[int]bool{}
		for _, idx := range group {
			removed[idx] = true
		}
		for _, p := range g.Productions {
			isGrouped := false
			for idx, gp := range prods {
				if removed[idx] && gp.Equal(p) {
					isGrouped = true
					break
				}
			}
			if !isGrouped {
				rewritten = append(rewritten, p)
			}
		}

		rewritten = append(rewritten, NewProduction(nt, append(append([]Symbol{}, prefix...), newLHS)...))
		for _, idx := range group {
			suffix := prods[idx].RHS[minPrefix:]
			if len(suffix) == 0 {
				rewritten = append(rewritten, NewProduction(newLHS, Epsilon))
			} else {
				rewritten = append(rewritten, NewProduction(newLHS, suffix...))
			}
		}

		g.Productions = rewritten
		return true
	}
	return false
}

func longestCommonPrefix(a, b []Symbol) []Symbol {
	var prefix []Symbol
	for i := 0; i < len(a) && i < len(b); i++ {
		if !a[i].Equal(b[i]) {
			break
		}
		prefix = append(prefix, a[i])
	}
	return prefix
}
