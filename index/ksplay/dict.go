package ksplay

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btree-query-bench/ksplay/index"
	"github.com/btree-query-bench/ksplay/persist"
)

var _ index.Index = (*Dict)(nil)

// Dict is an index.Index backed by a K-splay tree. It is safe for concurrent
// use; every call, Get included, takes the same exclusive lock because lookups
// restructure the tree.
type Dict struct {
	mu   sync.Mutex
	tree *Tree[int64, []byte]
	opts Options
}

func NewDict(k int, opts *Options) (*Dict, error) {
	tree, err := New[int64, []byte](k, opts)
	if err != nil {
		return nil, err
	}
	d := &Dict{tree: tree}
	if opts != nil {
		d.opts = *opts
	}
	return d, nil
}

// Insert stores value under key, overwriting any previous value.
func (d *Dict) Insert(key int64, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tree.Put(key, value)
	return nil
}

func (d *Dict) Get(key int64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.tree.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %d", index.ErrKeyNotFound, key)
	}
	return v, nil
}

func (d *Dict) Delete(key int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.tree.Delete(key); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return fmt.Errorf("%w: %d", index.ErrKeyNotFound, key)
		}
		return err
	}
	return nil
}

// Range returns a snapshot of the pairs with start <= key <= end. Later writes
// to the dict do not show up in the iterator.
func (d *Dict) Range(start, end int64) (index.Iterator, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var pairs []index.Pair
	for k, v := range d.tree.Range(start, end) {
		pairs = append(pairs, index.Pair{Key: k, Val: v})
	}
	return index.NewSliceIterator(pairs), nil
}

// Len returns the number of stored keys.
func (d *Dict) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree.Len()
}

// K returns the fan-out bound of the underlying tree.
func (d *Dict) K() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tree.K()
}

// SaveTo writes every pair to a Pebble store in dir, replacing any snapshot
// already there.
func (d *Dict) SaveTo(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return persist.Save(path, d.tree.All(), d.opts.storage())
}

// LoadFrom replaces the dict's contents with the snapshot in path. The pairs
// are inserted into a fresh tree with the same K. A path without a snapshot is
// an error; on any error the dict keeps its previous contents.
func (d *Dict) LoadFrom(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	fresh, err := New[int64, []byte](d.tree.K(), &d.opts)
	if err != nil {
		return err
	}
	err = persist.Load(path, func(key int64, value []byte) error {
		return fresh.Insert(key, value)
	}, d.opts.storage())
	if err != nil {
		return fmt.Errorf("ksplay: load %s: %w", path, err)
	}
	d.tree = fresh
	return nil
}

func (d *Dict) Close() error {
	return nil
}
