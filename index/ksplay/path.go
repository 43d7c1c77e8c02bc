package ksplay

import (
	"cmp"
	"fmt"
)

// step is one entry of an access path. child is the slot of node the walk
// descended into; for the terminal entry it is the rank of the key (the key's
// index when found, the external gap otherwise).
type step[K cmp.Ordered, V any] struct {
	node  *Node[K, V]
	child int
}

type path[K cmp.Ordered, V any] []step[K, V]

func (p path[K, V]) terminal() step[K, V] {
	return p[len(p)-1]
}

// walkTo descends from the root toward key. The walk stops at the node
// holding key or at the node whose next child would be nil.
func (t *Tree[K, V]) walkTo(key K) (p path[K, V], found bool) {
	n := t.root
	for {
		i, ok := n.rank(key)
		p = append(p, step[K, V]{node: n, child: i})
		if ok {
			return p, true
		}
		next := n.Children[i]
		if next == nil {
			return p, false
		}
		n = next
	}
}

// flat is the linearized content of a run of path entries: in-order keys and
// values plus the external children between them.
type flat[K cmp.Ordered, V any] struct {
	keys     []K
	values   []V
	children []*Node[K, V]
}

// flatten linearizes p. Every entry except the last is replaced, inside its
// parent, by its own flattening; all other children are emitted untouched.
func flatten[K cmp.Ordered, V any](p path[K, V]) (flat[K, V], error) {
	size := 0
	for _, s := range p {
		size += len(s.node.Keys)
	}
	f := flat[K, V]{
		keys:     make([]K, 0, size),
		values:   make([]V, 0, size),
		children: make([]*Node[K, V], 0, size+1),
	}
	if err := f.explore(p); err != nil {
		return flat[K, V]{}, err
	}
	return f, nil
}

func (f *flat[K, V]) explore(p path[K, V]) error {
	n, via := p[0].node, p[0].child
	if !n.shapeOK() {
		return fmt.Errorf("node with %d keys, %d values, %d children", len(n.Keys), len(n.Values), len(n.Children))
	}
	if len(p) > 1 && n.Children[via] != p[1].node {
		return fmt.Errorf("path entry does not own the next entry through slot %d", via)
	}
	for i, c := range n.Children {
		if len(p) > 1 && i == via {
			if err := f.explore(p[1:]); err != nil {
				return err
			}
		} else {
			f.children = append(f.children, c)
		}
		if i < len(n.Keys) {
			f.keys = append(f.keys, n.Keys[i])
			f.values = append(f.values, n.Values[i])
		}
	}
	return nil
}
