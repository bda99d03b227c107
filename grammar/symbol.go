package grammar

import "fmt"

// Symbol is the tagged union of the four kinds of values that can appear in
// a production's right-hand side or be the subject of FIRST/FOLLOW: a
// Terminal, a NonTerminal, the Epsilon singleton, or the Dot marker used
// only inside LR items. The interface is sealed to this package (the
// isSymbol method is unexported) so automaton.Item, which embeds a Dot in
// every item's rhs, must build its items out of these same four
// constructors rather than inventing a fifth kind.
type Symbol interface {
	isSymbol()

	// String renders the symbol the way it should appear in productions,
	// items, and error messages.
	String() string

	// Equal reports whether other is the same symbol (same kind and same
	// fields).
	Equal(other Symbol) bool

	// Less reports whether this symbol sorts before other under the total
	// order used throughout this module wherever iteration order is
	// observable: terminals sort by name, non-terminals by name then id,
	// every terminal before every non-terminal; Epsilon sorts after every
	// other symbol.
	Less(other Symbol) bool
}

// symbolRank gives the relative ordering of the four Symbol kinds when two
// symbols of different kinds are compared: every Terminal sorts before every
// NonTerminal, then Dot, then Epsilon. Within one kind, Terminal.Less and
// NonTerminal.Less compare by name (and id); this rank is only consulted
// across kinds, which keeps the order total and stable.
func symbolRank(s Symbol) int {
	switch s.(type) {
	case Terminal:
		return 0
	case NonTerminal:
		return 1
	case dotSymbol:
		return 2
	case epsilonSymbol:
		return 3
	default:
		return 4
	}
}

// Terminal is a member of a grammar's input alphabet. Two terminals are
// equal iff their names and IsEnd flags both match. The distinguished
// end-of-input terminal is End, with Name "$" and IsEnd true; it must be
// used (not reconstructed ad hoc) so that every builder agrees on identity.
type Terminal struct {
	Name  string
	IsEnd bool
}

// End is the distinguished end-of-input terminal, "$".
var End = Terminal{Name: "$", IsEnd: true}

// NewTerminal returns a Terminal with the given name. It is a construction
// error (caught only by convention, not enforced at the type level) to use
// this to build another end-of-input terminal; use End for that.
func NewTerminal(name string) Terminal {
	return Terminal{Name: name}
}

func (Terminal) isSymbol() {}

func (t Terminal) String() string {
	return t.Name
}

func (t Terminal) Equal(o Symbol) bool {
	other, ok := o.(Terminal)
	if !ok {
		return false
	}
	return t.Name == other.Name && t.IsEnd == other.IsEnd
}

func (t Terminal) Less(o Symbol) bool {
	other, ok := o.(Terminal)
	if !ok {
		return symbolRank(t) < symbolRank(o)
	}
	if t.Name != other.Name {
		return t.Name < other.Name
	}
	// IsEnd=false sorts before IsEnd=true so that a user terminal never
	// accidentally collides in ordering with a same-named End (which should
	// not happen in a well-formed grammar, but keeps Less a strict order
	// regardless).
	return !t.IsEnd && other.IsEnd
}

// NonTerminal is a grammar variable. ID 0 denotes a user-declared
// non-terminal; ID > 0 denotes one minted by Fresh during augmentation,
// left-recursion elimination, or left-factoring, and is rendered with a
// trailing tick for display, e.g. "Expr1'".
type NonTerminal struct {
	Name string
	ID   int
}

// NewNonTerminal returns a user-declared (ID 0) NonTerminal with the given
// name.
func NewNonTerminal(name string) NonTerminal {
	return NonTerminal{Name: name}
}

func (NonTerminal) isSymbol() {}

func (nt NonTerminal) String() string {
	if nt.ID == 0 {
		return nt.Name
	}
	return fmt.Sprintf("%s%d'", nt.Name, nt.ID)
}

func (nt NonTerminal) Equal(o Symbol) bool {
	other, ok := o.(NonTerminal)
	if !ok {
		return false
	}
	return nt.Name == other.Name && nt.ID == other.ID
}

func (nt NonTerminal) Less(o Symbol) bool {
	other, ok := o.(NonTerminal)
	if !ok {
		return symbolRank(nt) < symbolRank(o)
	}
	if nt.Name != other.Name {
		return nt.Name < other.Name
	}
	return nt.ID < other.ID
}

// Fresh returns a NonTerminal with the same base name as nt and the
// smallest ID >= nt.ID such that the result does not already appear among
// g's non-terminals. Transforms always query the live grammar (rather than
// a cached id counter) to avoid collisions with symbols introduced by
// earlier steps of the same transform.
func (nt NonTerminal) Fresh(g *Grammar) NonTerminal {
	existing := g.NonTerminals()
	id := nt.ID
	for {
		candidate := NonTerminal{Name: nt.Name, ID: id}
		collision := false
		for _, e := range existing {
			if e.Equal(candidate) {
				collision = true
				break
			}
		}
		if !collision {
			return candidate
		}
		id++
	}
}

// epsilonSymbol is the unexported backing type for the Epsilon singleton.
type epsilonSymbol struct{}

// Epsilon represents the empty string. It is a singleton: all epsilon
// values compare equal and Epsilon always sorts after every other symbol.
var Epsilon Symbol = epsilonSymbol{}

func (epsilonSymbol) isSymbol() {}

func (epsilonSymbol) String() string { return "ε" }

func (epsilonSymbol) Equal(o Symbol) bool {
	_, ok := o.(epsilonSymbol)
	return ok
}

func (e epsilonSymbol) Less(o Symbol) bool {
	_, ok := o.(epsilonSymbol)
	if ok {
		return false
	}
	return false // Epsilon never sorts before anything else.
}

// dotSymbol is the unexported backing type for the Dot marker.
type dotSymbol struct{}

// Dot is the marker used to record a parse position inside an LR item's
// right-hand side. It is treated as a terminal for storage purposes (it can
// sit in a []Symbol slice alongside Terminals and NonTerminals) but must
// never be added to a Grammar's productions or appear in Grammar.Terminals.
var Dot Symbol = dotSymbol{}

func (dotSymbol) isSymbol() {}

func (dotSymbol) String() string { return "•" }

func (dotSymbol) Equal(o Symbol) bool {
	_, ok := o.(dotSymbol)
	return ok
}

func (d dotSymbol) Less(o Symbol) bool {
	_, ok := o.(dotSymbol)
	if ok {
		return false
	}
	return symbolRank(d) < symbolRank(o)
}

// IsTerminal reports whether s is a Terminal.
func IsTerminal(s Symbol) bool {
	_, ok := s.(Terminal)
	return ok
}

// IsNonTerminal reports whether s is a NonTerminal.
func IsNonTerminal(s Symbol) bool {
	_, ok := s.(NonTerminal)
	return ok
}

// IsEpsilon reports whether s is the Epsilon singleton.
func IsEpsilon(s Symbol) bool {
	return s == Epsilon
}

// IsDot reports whether s is the Dot marker.
func IsDot(s Symbol) bool {
	return s == Dot
}

// EqualSymbols reports whether two symbol sequences are equal element-wise.
func EqualSymbols(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
