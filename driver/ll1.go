package driver

import (
	"fmt"

	"github.com/jrnilsson/parsegen/grammar"
	"github.com/jrnilsson/parsegen/internal/util"
	"github.com/jrnilsson/parsegen/table"
)

// LL1Driver parses a token stream by predictive descent over an LL1Table.
// The grammar the table was built from must actually be LL(1)
// (table.IsLL1()); GenerateLL1Driver refuses otherwise.
type LL1Driver struct {
	Table table.LL1Table
	Start grammar.NonTerminal
}

// GenerateLL1Driver builds an LL1Driver for grammar g, starting from start.
// It returns an error if g is not LL(1) under the built table.
func GenerateLL1Driver(g *grammar.Grammar, start grammar.NonTerminal) (LL1Driver, error) {
	t, err := table.BuildLL1(g)
	if err != nil {
		return LL1Driver{}, err
	}
	if !t.IsLL1() {
		return LL1Driver{}, fmt.Errorf("%w: grammar is not LL(1)", ErrSyntax)
	}
	return LL1Driver{Table: t, Start: start}, nil
}

// Parse drives a predictive descent parse of stream, returning the resulting
// parse tree rooted at the driver's start symbol.
func (ll1 LL1Driver) Parse(stream TokenStream) (ParseTree, error) {
	stack := util.Stack[grammar.Symbol]{Of: []grammar.Symbol{grammar.End, ll1.Start}}

	root := ParseTree{Symbol: ll1.Start}
	ptStack := util.Stack[*ParseTree]{Of: []*ParseTree{&root}}

	next := stream.Peek()
	node := ptStack.Peek()

	for {
		X := stack.Peek()
		if end, ok := X.(grammar.Terminal); ok && end.Equal(grammar.End) {
			break
		}

		if term, ok := X.(grammar.Terminal); ok {
			stream.Next()

			if next.Terminal() == term.Name {
				node.Source = next
				stack.Pop()
				ptStack.Pop()
				if !ptStack.Empty() {
					node = ptStack.Peek()
				}
			} else {
				return root, fmt.Errorf("%w: expected %s %s but found %q", ErrSyntax, util.ArticleFor(term.Name, false), term, next.Lexeme())
			}

			next = stream.Peek()
			continue
		}

		nt, ok := X.(grammar.NonTerminal)
		if !ok {
			return root, fmt.Errorf("%w: unexpected symbol %s on parse stack", ErrSyntax, X)
		}

		lookahead := grammar.NewTerminal(next.Terminal())
		prods := ll1.Table.Cells[table.LL1Key{LHS: nt, Term: lookahead}]
		if len(prods) == 0 {
			return root, fmt.Errorf("%w: unexpected %q here", ErrSyntax, next.Lexeme())
		}
		prod := prods[0]

		stack.Pop()
		ptStack.Pop()

		for i := len(prod.RHS) - 1; i >= 0; i-- {
			sym := prod.RHS[i]

			child := &ParseTree{Symbol: sym}
			node.Children = append([]*ParseTree{child}, node.Children...)

			if !grammar.IsEpsilon(sym) {
				stack.Push(sym)
				ptStack.Push(child)
			}
		}

		if !ptStack.Empty() {
			node = ptStack.Peek()
		}
	}

	return root, nil
}
