package driver

import (
	"fmt"
	"strings"

	"github.com/jrnilsson/parsegen/grammar"
)

const (
	treeLevelEmpty               = "        "
	treeLevelOngoing             = "  |     "
	treeLevelPrefix              = "  |%s: "
	treeLevelPrefixLast          = `  \%s: `
	treeLevelPrefixNamePadChar   = '-'
	treeLevelPrefixNamePadAmount = 3
)

func makeTreeLevelPrefix(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefix, msg)
}

func makeTreeLevelPrefixLast(msg string) string {
	for len([]rune(msg)) < treeLevelPrefixNamePadAmount {
		msg = string(treeLevelPrefixNamePadChar) + msg
	}
	return fmt.Sprintf(treeLevelPrefixLast, msg)
}

// ParseTree is a node in the concrete syntax tree a driver builds while
// parsing. Terminal nodes carry the Token they were reduced or shifted from;
// non-terminal nodes carry only the grammar symbol and its Children.
type ParseTree struct {
	// Symbol is the grammar symbol at this node.
	Symbol grammar.Symbol

	// Source is only set when Symbol is a Terminal.
	Source Token

	Children []*ParseTree
}

// String returns a prettified representation of the tree suitable for
// line-by-line comparison. Two parse trees are considered semantically
// identical if they produce identical String() output.
func (pt ParseTree) String() string {
	return pt.leveledStr("", "")
}

// Copy returns a deeply-copied parse tree.
func (pt ParseTree) Copy() ParseTree {
	newPt := ParseTree{
		Symbol:   pt.Symbol,
		Source:   pt.Source,
		Children: make([]*ParseTree, len(pt.Children)),
	}

	for i := range pt.Children {
		if pt.Children[i] != nil {
			newChild := pt.Children[i].Copy()
			newPt.Children[i] = &newChild
		}
	}

	return newPt
}

func (pt ParseTree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder

	sb.WriteString(firstPrefix)
	if grammar.IsTerminal(pt.Symbol) {
		sb.WriteString(fmt.Sprintf("(TERM %s)", pt.Symbol))
	} else {
		sb.WriteString(fmt.Sprintf("( %s )", pt.Symbol))
	}

	for i := range pt.Children {
		sb.WriteRune('\n')
		var leveledFirstPrefix string
		var leveledContPrefix string
		if i+1 < len(pt.Children) {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefix("")
			leveledContPrefix = contPrefix + treeLevelOngoing
		} else {
			leveledFirstPrefix = contPrefix + makeTreeLevelPrefixLast("")
			leveledContPrefix = contPrefix + treeLevelEmpty
		}
		itemOut := pt.Children[i].leveledStr(leveledFirstPrefix, leveledContPrefix)
		sb.WriteString(itemOut)
	}

	return sb.String()
}

// Equal returns whether pt and o represent the exact same tree structure.
func (pt ParseTree) Equal(o any) bool {
	other, ok := o.(ParseTree)
	if !ok {
		otherPtr, ok := o.(*ParseTree)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if !grammar.EqualSymbols([]grammar.Symbol{pt.Symbol}, []grammar.Symbol{other.Symbol}) {
		return false
	}
	if len(pt.Children) != len(other.Children) {
		return false
	}
	for i := range pt.Children {
		if !pt.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
