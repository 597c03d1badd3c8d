package bumpgo

import "errors"

// The engine's error taxonomy is entirely made of programmer errors: they
// arise from misuse (a bad cellSize, a duplicate or missing item, a filter
// naming a response that was never registered), not from data. None of
// them is transient, so there is no retry logic anywhere in this package —
// every mutating operation validates before touching state, so a returned
// error never leaves the world partially mutated.
var (
	ErrBadArgument     = errors.New("bumpgo: bad argument")
	ErrDuplicateItem   = errors.New("bumpgo: item already present")
	ErrUnknownItem     = errors.New("bumpgo: item not found")
	ErrUnknownResponse = errors.New("bumpgo: response not registered")
)
