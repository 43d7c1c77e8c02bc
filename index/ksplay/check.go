package ksplay

import (
	"cmp"
	"fmt"
)

type bound[K cmp.Ordered] struct {
	key K
	set bool
}

// Check walks the whole tree and verifies the node shape, strict key order
// within each subtree's bounds, and the key count. Errors wrap ErrInvariant.
func (t *Tree[K, V]) Check() error {
	if t.root == nil {
		return fmt.Errorf("%w: nil root", ErrInvariant)
	}
	n, err := check(t.root, bound[K]{}, bound[K]{}, 1)
	if err != nil {
		return err
	}
	if n != t.count {
		return fmt.Errorf("%w: counted %d keys, tree reports %d", ErrInvariant, n, t.count)
	}
	return nil
}

func check[K cmp.Ordered, V any](n *Node[K, V], lo, hi bound[K], depth int) (int, error) {
	if !n.shapeOK() {
		return 0, fmt.Errorf("%w: depth %d: %d keys, %d values, %d children", ErrInvariant, depth, len(n.Keys), len(n.Values), len(n.Children))
	}
	total := len(n.Keys)
	for i, key := range n.Keys {
		if i > 0 && n.Keys[i-1] >= key {
			return 0, fmt.Errorf("%w: depth %d: keys %v not strictly increasing", ErrInvariant, depth, n.Keys)
		}
		if (lo.set && key <= lo.key) || (hi.set && key >= hi.key) {
			return 0, fmt.Errorf("%w: depth %d: key %v outside its parent's bounds", ErrInvariant, depth, key)
		}
	}
	for i, c := range n.Children {
		if c == nil {
			continue
		}
		clo, chi := lo, hi
		if i > 0 {
			clo = bound[K]{key: n.Keys[i-1], set: true}
		}
		if i < len(n.Keys) {
			chi = bound[K]{key: n.Keys[i], set: true}
		}
		sub, err := check(c, clo, chi, depth+1)
		if err != nil {
			return 0, err
		}
		total += sub
	}
	return total, nil
}
