package ksplay

import (
	"errors"
	"fmt"
)

var ErrDuplicateKey = errors.New("ksplay: duplicate key")

var ErrKeyNotFound = errors.New("ksplay: key not found")

// ErrSplitRequired is returned by Node.Insert when the gap the key falls into
// holds a subtree rather than an external (nil) slot.
var ErrSplitRequired = errors.New("ksplay: gap holds a subtree")

// ErrMergeRequired is returned by Node.Remove when both children adjacent to
// the key are subtrees.
var ErrMergeRequired = errors.New("ksplay: both neighbours of key are subtrees")

var ErrInvalidFanout = errors.New("ksplay: fan-out must be at least 2")

var ErrInvariant = errors.New("ksplay: invariant violation")

// InvariantError describes a broken structural invariant. It is a programming
// error: trees panic with it and refuse any further operation.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ksplay: invariant violation in %s: %s", e.Op, e.Msg)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}
