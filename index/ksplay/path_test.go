package ksplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T, k int, root *Node[int, int]) *Tree[int, int] {
	t.Helper()
	tree, err := New[int, int](k, nil)
	require.NoError(t, err)
	tree.root = root
	tree.count, _ = check(root, bound[int]{}, bound[int]{}, 1)
	return tree
}

// marker returns a distinct external child that tests can track by identity.
func marker() *Node[int, int] {
	return NewNode[int, int]()
}

func assertSameNodes(t *testing.T, want, got []*Node[int, int]) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Same(t, want[i], got[i], "child %d", i)
	}
}

// walkFixture is the tree
//
//	root [100 200]
//	└─ C [25 50 75]      (root slot 0)
//	   └─ B [30 45]      (C slot 1)
//	      └─ A [48 49]   (B slot 2)
//
// with markers in every other child slot above A.
type walkFixture struct {
	root, c, b, a *Node[int, int]
	x1, x2        *Node[int, int]
	y0, y2, y3    *Node[int, int]
	z0, z1        *Node[int, int]
}

func newWalkFixture() walkFixture {
	var e walkFixture
	e.x1, e.x2 = marker(), marker()
	e.y0, e.y2, e.y3 = marker(), marker(), marker()
	e.z0, e.z1 = marker(), marker()
	e.a = leaf(48, 49)
	e.b = leaf(30, 45)
	e.b.Children = []*Node[int, int]{e.z0, e.z1, e.a}
	e.c = leaf(25, 50, 75)
	e.c.Children = []*Node[int, int]{e.y0, e.b, e.y2, e.y3}
	e.root = leaf(100, 200)
	e.root.Children = []*Node[int, int]{e.c, e.x1, e.x2}
	return e
}

func TestWalkTo(t *testing.T) {
	assert := assert.New(t)

	e := newWalkFixture()
	tree := testTree(t, 3, e.root)

	p, found := tree.walkTo(47)
	assert.False(found)
	require.Len(t, p, 4)
	assert.Same(e.root, p[0].node)
	assert.Same(e.c, p[1].node)
	assert.Same(e.b, p[2].node)
	assert.Same(e.a, p[3].node)
	assert.Equal([]int{0, 1, 2, 0}, []int{p[0].child, p[1].child, p[2].child, p[3].child})

	p, found = tree.walkTo(45)
	assert.True(found)
	require.Len(t, p, 3)
	assert.Same(e.b, p.terminal().node)
	assert.Equal(1, p.terminal().child)

	p, found = tree.walkTo(100)
	assert.True(found)
	assert.Len(p, 1)

	// Walks never modify the tree.
	assert.Equal([]int{100, 200}, e.root.Keys)
	assert.Same(e.c, e.root.Children[0])
}

func TestWalkToEmptyTree(t *testing.T) {
	tree, err := New[int, int](2, nil)
	require.NoError(t, err)

	p, found := tree.walkTo(1)
	assert.False(t, found)
	require.Len(t, p, 1)
	assert.Equal(t, 0, p[0].child)
}

func TestFlatten(t *testing.T) {
	assert := assert.New(t)

	e := newWalkFixture()
	tree := testTree(t, 3, e.root)
	p, _ := tree.walkTo(47)

	f, err := flatten(p)
	require.NoError(t, err)
	assert.Equal([]int{25, 30, 45, 48, 49, 50, 75, 100, 200}, f.keys)
	assert.Equal([]int{2500, 3000, 4500, 4800, 4900, 5000, 7500, 10000, 20000}, f.values)
	assertSameNodes(t, []*Node[int, int]{e.y0, e.z0, e.z1, nil, nil, nil, e.y2, e.y3, e.x1, e.x2}, f.children)

	// A suffix flattens only the nodes it names.
	f, err = flatten(p[2:])
	require.NoError(t, err)
	assert.Equal([]int{30, 45, 48, 49}, f.keys)
	assertSameNodes(t, []*Node[int, int]{e.z0, e.z1, nil, nil, nil}, f.children)
}

func TestFlattenRejectsBrokenPath(t *testing.T) {
	e := newWalkFixture()
	tree := testTree(t, 3, e.root)
	p, _ := tree.walkTo(47)

	// B no longer owns A through slot 2.
	e.b.Children[2] = marker()
	_, err := flatten(p)
	assert.Error(t, err)

	e = newWalkFixture()
	e.c.Children = e.c.Children[:3]
	_, err = flatten(path[int, int]{{node: e.root, child: 0}, {node: e.c, child: 1}})
	assert.Error(t, err)
}

// linearize lists the keys and opaque children of the subtree at n in order.
// Nodes in opaque are not descended into.
func linearize(n *Node[int, int], opaque map[*Node[int, int]]bool) ([]int, []*Node[int, int]) {
	var keys []int
	var ext []*Node[int, int]
	var walk func(n *Node[int, int])
	walk = func(n *Node[int, int]) {
		for i, c := range n.Children {
			if c == nil || opaque[c] {
				ext = append(ext, c)
			} else {
				walk(c)
			}
			if i < len(n.Keys) {
				keys = append(keys, n.Keys[i])
			}
		}
	}
	walk(n)
	return keys, ext
}

func TestFlattenComposeRoundTrip(t *testing.T) {
	wantKeys := []int{25, 30, 45, 48, 49, 50, 75, 100, 200}

	for _, k := range []int{2, 3, 4, 10} {
		e := newWalkFixture()
		tree := testTree(t, k, e.root)
		p, _ := tree.walkTo(47)
		f, err := flatten(p)
		require.NoError(t, err)

		top, err := tree.compose(f)
		require.NoError(t, err)
		keys, ext := linearize(top, map[*Node[int, int]]bool{
			e.x1: true, e.x2: true, e.y0: true, e.y2: true, e.y3: true, e.z0: true, e.z1: true,
		})
		assert.Equal(t, wantKeys, keys, "K=%d", k)
		assertSameNodes(t, []*Node[int, int]{e.y0, e.z0, e.z1, nil, nil, nil, e.y2, e.y3, e.x1, e.x2}, ext)
		if k >= 10 {
			assert.Equal(t, wantKeys, top.Keys, "K=%d composes a single node", k)
		}
	}
}
