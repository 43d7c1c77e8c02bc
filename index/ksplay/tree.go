package ksplay

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
)

// Tree is a K-splay tree. The zero value is not usable; call New.
//
// A Tree is not safe for concurrent use. Every operation, reads included,
// restructures the tree, so callers sharing one must hold an exclusive lock
// per call.
type Tree[K cmp.Ordered, V any] struct {
	k     int
	root  *Node[K, V]
	count int
	opts  Options
	log   *slog.Logger

	// broken is set by the first invariant failure; the tree is unusable after.
	broken *InvariantError
}

// New returns an empty tree with fan-out bound k. k is fixed for the lifetime
// of the tree; see Rebuild.
func New[K cmp.Ordered, V any](k int, opts *Options) (*Tree[K, V], error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFanout, k)
	}
	t := &Tree[K, V]{
		k:    k,
		root: NewNode[K, V](),
		log:  opts.logger().With("component", "ksplay", "k", k),
	}
	if opts != nil {
		t.opts = *opts
	}
	return t, nil
}

// K returns the fan-out bound.
func (t *Tree[K, V]) K() int {
	return t.k
}

// Len returns the number of keys stored.
func (t *Tree[K, V]) Len() int {
	return t.count
}

// Root exposes the current root node for inspection. It must not be mutated.
func (t *Tree[K, V]) Root() *Node[K, V] {
	return t.root
}

// Insert adds key and splays its path. Inserting a key that is already
// present returns ErrDuplicateKey and leaves the tree untouched.
func (t *Tree[K, V]) Insert(key K, value V) error {
	t.mustBeUsable()
	p, found := t.walkTo(key)
	if found {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	if err := p.terminal().node.Insert(key, value); err != nil {
		t.fail("insert", err.Error())
	}
	t.count++
	t.root = t.ksplay(p)
	t.verify("insert")
	return nil
}

// Put inserts key or overwrites its value, then splays. It reports whether
// a value was replaced.
func (t *Tree[K, V]) Put(key K, value V) bool {
	t.mustBeUsable()
	p, found := t.walkTo(key)
	term := p.terminal()
	if found {
		term.node.Values[term.child] = value
	} else {
		if err := term.node.Insert(key, value); err != nil {
			t.fail("put", err.Error())
		}
		t.count++
	}
	t.root = t.ksplay(p)
	t.verify("put")
	return found
}

// Contains reports whether key is present. The accessed path is splayed
// either way.
func (t *Tree[K, V]) Contains(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Get returns the value stored under key and splays the accessed path.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	t.mustBeUsable()
	var value V
	p, found := t.walkTo(key)
	if found {
		term := p.terminal()
		value = term.node.Values[term.child]
	}
	t.root = t.ksplay(p)
	t.verify("get")
	return value, found
}

// Delete removes key and splays its path. When both children next to the key
// are subtrees, the key is replaced by its in-order predecessor, taken from
// the bottom of the left subtree. An absent key returns ErrKeyNotFound and
// leaves the tree untouched.
func (t *Tree[K, V]) Delete(key K) error {
	t.mustBeUsable()
	p, found := t.walkTo(key)
	if !found {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	term := p.terminal()
	if _, err := term.node.Remove(key); errors.Is(err, ErrMergeRequired) {
		pk, pv := t.takeMax(term.node, term.child)
		term.node.Keys[term.child] = pk
		term.node.Values[term.child] = pv
	} else if err != nil {
		t.fail("delete", err.Error())
	}
	t.count--
	t.root = t.ksplay(p)
	t.verify("delete")
	return nil
}

// takeMax removes and returns the largest key of the subtree in
// parent.Children[slot]. A node left without keys is replaced by its only
// child.
func (t *Tree[K, V]) takeMax(parent *Node[K, V], slot int) (K, V) {
	n := parent.Children[slot]
	for last := len(n.Children) - 1; n.Children[last] != nil; last = len(n.Children) - 1 {
		parent, slot = n, last
		n = n.Children[last]
	}
	if len(n.Keys) == 0 {
		t.fail("delete", "keyless node on the right spine")
	}
	key := n.Keys[len(n.Keys)-1]
	value, err := n.Remove(key)
	if err != nil {
		t.fail("delete", err.Error())
	}
	if len(n.Keys) == 0 {
		parent.Children[slot] = n.Children[0]
	}
	return key, value
}

// Rebuild moves every pair into a fresh tree with fan-out k. It is the only
// way to change K.
func (t *Tree[K, V]) Rebuild(k int) error {
	t.mustBeUsable()
	fresh, err := New[K, V](k, &t.opts)
	if err != nil {
		return err
	}
	for key, value := range t.All() {
		if err := fresh.Insert(key, value); err != nil {
			return err
		}
	}
	t.log.Info("rebuilt tree", "from", t.k, "to", k, "keys", fresh.count)
	*t = *fresh
	return nil
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, V]) Height() int {
	return height(t.root)
}

func height[K cmp.Ordered, V any](n *Node[K, V]) int {
	if n == nil {
		return 0
	}
	h := 0
	for _, c := range n.Children {
		h = max(h, height(c))
	}
	return h + 1
}

// depthOf returns the length of the access path for key, without splaying.
func (t *Tree[K, V]) depthOf(key K) int {
	p, _ := t.walkTo(key)
	return len(p)
}

func (t *Tree[K, V]) verify(op string) {
	if !t.opts.CheckInvariants {
		return
	}
	if err := t.Check(); err != nil {
		t.fail(op, err.Error())
	}
}

func (t *Tree[K, V]) fail(op, msg string) {
	e := &InvariantError{Op: op, Msg: msg}
	t.broken = e
	t.log.Error("tree invariant violated", "op", op, "err", msg)
	panic(e)
}

func (t *Tree[K, V]) mustBeUsable() {
	if t.broken != nil {
		panic(t.broken)
	}
}
