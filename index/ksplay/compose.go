package ksplay

import "fmt"

// maxComposeWidth bounds the number of children compose accepts. A splay
// never flattens more than the root plus K+1 nodes of at most K+1 children
// each, and the root stays near K children, so real inputs are far below this.
func maxComposeWidth(k int) int {
	return 2 * (k + 2) * (k + 2)
}

// compose rebuilds f into a subtree. Up to K children fit in a single node.
// Larger inputs are cut into consecutive groups of K children; every group
// that still has K keys available promotes its K-th key into a new root. The
// tail is a single child (hung directly under the root) or an under-full
// last group. The result is at most two levels deep, and the root has
// ceil(n/K) children for n input children.
//
// Lower nodes share the backing arrays of f; the three-index slices keep an
// append to one node from writing into its neighbour.
func (t *Tree[K, V]) compose(f flat[K, V]) (*Node[K, V], error) {
	k := t.k
	keys, values, children := f.keys, f.values, f.children
	if len(children) != len(keys)+1 || len(values) != len(keys) {
		return nil, fmt.Errorf("compose of %d keys, %d values, %d children", len(keys), len(values), len(children))
	}
	if len(children) > maxComposeWidth(k) {
		return nil, fmt.Errorf("compose of %d children exceeds %d for K=%d", len(children), maxComposeWidth(k), k)
	}

	if len(children) <= k {
		return &Node[K, V]{Keys: keys, Values: values, Children: children}, nil
	}

	root := &Node[K, V]{}
	for len(children) >= k {
		if len(keys) >= k {
			root.Children = append(root.Children, &Node[K, V]{
				Keys:     keys[: k-1 : k-1],
				Values:   values[: k-1 : k-1],
				Children: children[:k:k],
			})
			root.Keys = append(root.Keys, keys[k-1])
			root.Values = append(root.Values, values[k-1])
			keys, values, children = keys[k:], values[k:], children[k:]
			continue
		}
		// Exactly k children and k-1 keys left: the last full group.
		root.Children = append(root.Children, &Node[K, V]{
			Keys:     keys,
			Values:   values,
			Children: children[:k:k],
		})
		keys, values, children = nil, nil, children[k:]
	}

	switch len(children) {
	case 0:
	case 1:
		root.Children = append(root.Children, children[0])
	default:
		root.Children = append(root.Children, &Node[K, V]{Keys: keys, Values: values, Children: children})
	}
	return root, nil
}
