/*
Package ksplay implements a K-splay tree: a self-adjusting multiway search
tree. Every access walks from the root to the node holding (or bounding) the
key and then restructures that whole path bottom-up, so recently used key
ranges move toward the root while node fan-out stays near K.

## Terminology

path: the nodes visited by a walk, root first. Each entry remembers which child
slot the walk descended into.

flatten: linearize a contiguous run of path entries into one sorted sequence of
keys and the external children hanging off that run, in order.

compose: rebuild such a flat sequence into a node, or a root with one layer of
K-ary nodes below it.

step: flatten the deepest K to K+2 path entries, compose them, and splice the
result back into the parent entry's child slot. Steps repeat until one node
(the new root) is left.

## Tricky Bits

- nodes may hold more than K children for a short while: the terminal node
right after an insert, and intermediate composed nodes during a splay
- the root may exceed K children after compose, never the lower layer
- reads splay too, so even Contains/Get need exclusive access
- All, Range, Min, Max, Next and Prev only read; they leave the shape alone

Dict wraps a Tree[int64, []byte] as an index.Index, guarded by a mutex, and
stores snapshots through package persist.
*/
package ksplay
