package ksplay

import (
	"cmp"
	"slices"
)

// Node is one multiway tree node. Children[i] holds the keys strictly between
// Keys[i-1] and Keys[i]; a nil child is an external position with no keys.
//
// Invariants: Keys strictly increasing, len(Values) == len(Keys),
// len(Children) == len(Keys)+1. A node exclusively owns its non-nil children.
type Node[K cmp.Ordered, V any] struct {
	Keys     []K
	Values   []V
	Children []*Node[K, V]
}

// NewNode returns an empty node: no keys, one external child.
func NewNode[K cmp.Ordered, V any]() *Node[K, V] {
	return &Node[K, V]{Children: make([]*Node[K, V], 1)}
}

func (n *Node[K, V]) Len() int {
	return len(n.Keys)
}

// rank returns the number of keys smaller than key and whether key is present.
func (n *Node[K, V]) rank(key K) (int, bool) {
	return slices.BinarySearch(n.Keys, key)
}

// Contains reports whether key is stored in this node. Children are not
// searched.
func (n *Node[K, V]) Contains(key K) bool {
	_, found := n.rank(key)
	return found
}

// Insert adds key at its rank. The gap the key lands in must be external: the
// nil slot at that rank is split into two nil slots around the new key.
func (n *Node[K, V]) Insert(key K, value V) error {
	i, found := n.rank(key)
	if found {
		return ErrDuplicateKey
	}
	if n.Children[i] != nil {
		return ErrSplitRequired
	}
	n.Keys = slices.Insert(n.Keys, i, key)
	n.Values = slices.Insert(n.Values, i, value)
	n.Children = slices.Insert(n.Children, i+1, nil)
	return nil
}

// Remove deletes key and one of its two neighbouring child slots: the right
// one if it is nil, otherwise the left one if it is nil. When both are
// subtrees the node is left as is and ErrMergeRequired is returned.
func (n *Node[K, V]) Remove(key K) (V, error) {
	var zero V
	i, found := n.rank(key)
	if !found {
		return zero, ErrKeyNotFound
	}
	drop := i + 1
	if n.Children[drop] != nil {
		if n.Children[i] != nil {
			return zero, ErrMergeRequired
		}
		drop = i
	}
	value := n.Values[i]
	n.Keys = slices.Delete(n.Keys, i, i+1)
	n.Values = slices.Delete(n.Values, i, i+1)
	n.Children = slices.Delete(n.Children, drop, drop+1)
	return value, nil
}

func (n *Node[K, V]) shapeOK() bool {
	return len(n.Children) == len(n.Keys)+1 && len(n.Values) == len(n.Keys)
}
