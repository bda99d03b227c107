package grammar

import "errors"

// ErrNotAugmented reports a grammar that is not augmented (one whose start
// symbol does not have exactly one production, to the previous start
// symbol). No function in this module returns it.
var ErrNotAugmented = errors.New("grammar is not augmented")
