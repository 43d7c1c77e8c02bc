package ksplay

import (
	"context"
	"log/slog"
)

// suffixLength is how many of the deepest path entries one step consumes:
// K, plus one when the deepest node has K children, plus one more at K+1.
// The flattened input then has at least K+1 children whenever the path is
// long enough.
func (t *Tree[K, V]) suffixLength(deepest *Node[K, V]) int {
	s := t.k
	if c := len(deepest.Children); c >= t.k {
		s++
		if c >= t.k+1 {
			s++
		}
	}
	return s
}

// splayStep flattens and recomposes the deepest entries of p, hangs the new
// node in the slot the parent entry used to reach the old run, and returns
// the shortened path.
func (t *Tree[K, V]) splayStep(p path[K, V]) path[K, V] {
	s := min(t.suffixLength(p.terminal().node), len(p))
	cut := len(p) - s

	f, err := flatten(p[cut:])
	if err != nil {
		t.fail("flatten", err.Error())
	}
	top, err := t.compose(f)
	if err != nil {
		t.fail("compose", err.Error())
	}
	if t.log.Enabled(context.Background(), slog.LevelDebug) {
		t.log.Debug("ksplay step", "depth", len(p), "suffix", s, "keys", len(f.keys), "children", len(f.children), "fanout", len(top.Children))
	}

	if cut > 0 {
		parent := p[cut-1]
		parent.node.Children[parent.child] = top
	}
	return append(p[:cut], step[K, V]{node: top, child: -1})
}

// ksplay restructures the whole path and returns the new root. A path of a
// single node still gets one step, which splits an over-full root.
func (t *Tree[K, V]) ksplay(p path[K, V]) *Node[K, V] {
	p = t.splayStep(p)
	for len(p) > 1 {
		p = t.splayStep(p)
	}
	return p[0].node
}
