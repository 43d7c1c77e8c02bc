package ksplay

import (
	"cmp"
	"iter"
	"slices"
)

// The queries in this file are read-only: they do not splay.

// All yields every pair in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		inorder(t.root, yield)
	}
}

func inorder[K cmp.Ordered, V any](n *Node[K, V], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}
	for i, c := range n.Children {
		if !inorder(c, yield) {
			return false
		}
		if i < len(n.Keys) && !yield(n.Keys[i], n.Values[i]) {
			return false
		}
	}
	return true
}

// Range yields the pairs with lo <= key <= hi in ascending key order.
// Subtrees entirely outside the bounds are skipped.
func (t *Tree[K, V]) Range(lo, hi K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if lo > hi {
			return
		}
		inrange(t.root, lo, hi, yield)
	}
}

func inrange[K cmp.Ordered, V any](n *Node[K, V], lo, hi K, yield func(K, V) bool) bool {
	if n == nil {
		return true
	}
	// Children[start] is the first child that can hold keys >= lo.
	start, _ := slices.BinarySearch(n.Keys, lo)
	for i := start; i < len(n.Children); i++ {
		if !inrange(n.Children[i], lo, hi, yield) {
			return false
		}
		if i == len(n.Keys) {
			break
		}
		// A false return past hi also stops every ancestor.
		if n.Keys[i] > hi || !yield(n.Keys[i], n.Values[i]) {
			return false
		}
	}
	return true
}

// Min returns the smallest pair.
func (t *Tree[K, V]) Min() (K, V, bool) {
	var (
		key   K
		value V
		ok    bool
	)
	for n := t.root; n != nil; n = n.Children[0] {
		if len(n.Keys) > 0 {
			key, value, ok = n.Keys[0], n.Values[0], true
		}
	}
	return key, value, ok
}

// Max returns the largest pair.
func (t *Tree[K, V]) Max() (K, V, bool) {
	var (
		key   K
		value V
		ok    bool
	)
	for n := t.root; n != nil; n = n.Children[len(n.Children)-1] {
		if last := len(n.Keys) - 1; last >= 0 {
			key, value, ok = n.Keys[last], n.Values[last], true
		}
	}
	return key, value, ok
}

// Next returns the smallest pair with a key strictly greater than key.
func (t *Tree[K, V]) Next(key K) (K, V, bool) {
	var (
		next  K
		value V
		ok    bool
	)
	for n := t.root; n != nil; {
		i, found := n.rank(key)
		if found {
			i++
		}
		if i < len(n.Keys) {
			next, value, ok = n.Keys[i], n.Values[i], true
		}
		n = n.Children[i]
	}
	return next, value, ok
}

// Prev returns the largest pair with a key strictly less than key.
func (t *Tree[K, V]) Prev(key K) (K, V, bool) {
	var (
		prev  K
		value V
		ok    bool
	)
	for n := t.root; n != nil; {
		i, _ := n.rank(key)
		if i > 0 {
			prev, value, ok = n.Keys[i-1], n.Values[i-1], true
		}
		n = n.Children[i]
	}
	return prev, value, ok
}
