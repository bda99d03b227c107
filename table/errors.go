package table

import "errors"

// ErrAmbiguousStartState is returned by BuildSLR1, BuildCLR1, and BuildLALR1
// if more than one state contains the augmented start item with the dot at
// position 0 (for BuildCLR1, with lookahead end-of-input as well). The state-numbering convention that fixes state
// 0 to "the" start state is only sound if exactly one such state exists;
// per spec.md §9 this must be asserted, not assumed.
var ErrAmbiguousStartState = errors.New("more than one state contains the LR(1) start item")
