// Package index defines the dictionary contract shared by the ordered
// indexes in this module.
package index

import "errors"

// ErrKeyNotFound is returned by Get and Delete for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// Index is an ordered dictionary from int64 keys to byte values.
// Insert overwrites the value of an existing key.
type Index interface {
	Insert(key int64, value []byte) error
	Get(key int64) ([]byte, error)
	Delete(key int64) error
	// Range returns the pairs with start <= key <= end in ascending key order.
	Range(start, end int64) (Iterator, error)

	SaveTo(path string) error
	LoadFrom(path string) error
	Close() error
}
