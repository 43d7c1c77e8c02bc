package ksplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(keys ...int) *Node[int, int] {
	n := NewNode[int, int]()
	for _, k := range keys {
		if err := n.Insert(k, k*100); err != nil {
			panic(err)
		}
	}
	return n
}

func TestNodeInsertKeepsOrder(t *testing.T) {
	assert := assert.New(t)

	n := NewNode[int, int]()
	assert.Equal(0, n.Len())
	assert.Len(n.Children, 1)

	for _, k := range []int{30, 10, 20, 40} {
		assert.NoError(n.Insert(k, k*100))
	}
	assert.Equal([]int{10, 20, 30, 40}, n.Keys)
	assert.Equal([]int{1000, 2000, 3000, 4000}, n.Values)
	assert.Len(n.Children, 5)
	assert.True(n.shapeOK())
	assert.True(n.Contains(20))
	assert.False(n.Contains(25))

	assert.ErrorIs(n.Insert(20, 0), ErrDuplicateKey)
	assert.Equal([]int{10, 20, 30, 40}, n.Keys)
}

func TestNodeInsertIntoSubtreeGap(t *testing.T) {
	assert := assert.New(t)

	sub := leaf(15)
	n := leaf(10, 20)
	n.Children[1] = sub

	assert.ErrorIs(n.Insert(12, 0), ErrSplitRequired)
	assert.Equal([]int{10, 20}, n.Keys)
	assert.Same(sub, n.Children[1])

	// Gaps that are still external take the key.
	assert.NoError(n.Insert(25, 0))
	assert.Equal([]int{10, 20, 25}, n.Keys)
	assert.Same(sub, n.Children[1])
	assert.Nil(n.Children[3])
}

func TestNodeRemove(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	left, right := leaf(5), leaf(25)

	// Right slot external: dropped, left subtree stays attached.
	n := leaf(10, 20)
	n.Children[0] = left
	v, err := n.Remove(10)
	require.NoError(err)
	assert.Equal(1000, v)
	assert.Equal([]int{20}, n.Keys)
	assert.Equal([]*Node[int, int]{left, nil}, n.Children)

	// Right slot is a subtree, left is external: left slot dropped.
	n = leaf(10, 20)
	n.Children[2] = right
	_, err = n.Remove(20)
	require.NoError(err)
	assert.Equal([]int{10}, n.Keys)
	assert.Equal([]*Node[int, int]{nil, right}, n.Children)

	// Both neighbours are subtrees.
	n = leaf(10)
	n.Children[0], n.Children[1] = left, right
	_, err = n.Remove(10)
	assert.ErrorIs(err, ErrMergeRequired)
	assert.Equal([]int{10}, n.Keys)
	assert.Equal([]*Node[int, int]{left, right}, n.Children)

	_, err = n.Remove(99)
	assert.ErrorIs(err, ErrKeyNotFound)
}

func TestNodeRemoveLastKey(t *testing.T) {
	assert := assert.New(t)

	n := leaf(7)
	_, err := n.Remove(7)
	assert.NoError(err)
	assert.Equal(0, n.Len())
	assert.Len(n.Children, 1)
	assert.True(n.shapeOK())
}
