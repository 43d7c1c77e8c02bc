// Package listindex is a sorted-slice dictionary. It is slow for writes but
// trivially correct, which makes it the reference model for the other
// indexes.
package listindex

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/btree-query-bench/ksplay/index"
	"github.com/btree-query-bench/ksplay/persist"
)

var _ index.Index = (*ListIndex)(nil)

type Data struct {
	Key int64
	Val []byte
}

type ListIndex struct {
	// Data is kept sorted by Key with no duplicates.
	Data []Data

	// Storage is passed to persist by SaveTo and LoadFrom.
	Storage *persist.Options
}

func NewListIndex() *ListIndex {
	return &ListIndex{
		Data: make([]Data, 0),
	}
}

func (l *ListIndex) find(key int64) (int, bool) {
	return slices.BinarySearchFunc(l.Data, key, func(d Data, k int64) int {
		return cmp.Compare(d.Key, k)
	})
}

func (l *ListIndex) Insert(key int64, value []byte) error {
	i, found := l.find(key)
	if found {
		l.Data[i].Val = value
		return nil
	}
	l.Data = slices.Insert(l.Data, i, Data{Key: key, Val: value})
	return nil
}

func (l *ListIndex) Get(key int64) ([]byte, error) {
	i, found := l.find(key)
	if !found {
		return nil, fmt.Errorf("%w: %d", index.ErrKeyNotFound, key)
	}
	return l.Data[i].Val, nil
}

func (l *ListIndex) Delete(key int64) error {
	i, found := l.find(key)
	if !found {
		return fmt.Errorf("%w: %d", index.ErrKeyNotFound, key)
	}
	l.Data = slices.Delete(l.Data, i, i+1)
	return nil
}

func (l *ListIndex) Range(start, end int64) (index.Iterator, error) {
	lo, _ := l.find(start)
	hi := lo
	for hi < len(l.Data) && l.Data[hi].Key <= end {
		hi++
	}
	return &ListIterator{
		data: l.Data[lo:hi:hi],
		cur:  -1,
	}, nil
}

func (l *ListIndex) SaveTo(path string) error {
	return persist.Save(path, func(yield func(int64, []byte) bool) {
		for _, d := range l.Data {
			if !yield(d.Key, d.Val) {
				return
			}
		}
	}, l.Storage)
}

func (l *ListIndex) LoadFrom(path string) error {
	var data []Data
	err := persist.Load(path, func(key int64, value []byte) error {
		data = append(data, Data{Key: key, Val: value})
		return nil
	}, l.Storage)
	if err != nil {
		return err
	}
	l.Data = data
	return nil
}

func (l *ListIndex) Close() error { return nil }

type ListIterator struct {
	data []Data
	cur  int
}

func (it *ListIterator) Next() bool {
	it.cur++
	return it.cur < len(it.data)
}

func (it *ListIterator) Key() int64    { return it.data[it.cur].Key }
func (it *ListIterator) Value() []byte { return it.data[it.cur].Val }
func (it *ListIterator) Error() error  { return nil }
func (it *ListIterator) Close() error  { return nil }
