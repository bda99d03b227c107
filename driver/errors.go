// Package driver implements table-driven parsers — LL(1) predictive descent
// and LR shift-reduce — that consume a grammar.Grammar's table.LL1Table or
// table.ParsingTable and a stream of tokens, producing a ParseTree.
package driver

import "errors"

// ErrSyntax is wrapped by every parse error a driver returns so callers can
// distinguish a malformed input stream from a programmer error (a nil table,
// a token class missing from the grammar).
var ErrSyntax = errors.New("syntax error")
