// Package persist stores snapshots of ordered int64 -> []byte dictionaries in
// Pebble (CockroachDB's LSM storage engine).
//
// Key layout:
//
//	'k' + 8 bytes big-endian (uint64(key) ^ 1<<63)
//
// Flipping the sign bit keeps negative keys ahead of positive ones under
// Pebble's bytewise ordering, so a snapshot reads back in key order.
package persist

import (
	"encoding/binary"
	"fmt"
	"iter"
	"log/slog"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

const (
	pairPrefix = 'k'
	keyLen     = 9
)

// Options configures where and how a snapshot is stored. A nil *Options is
// valid and means the OS filesystem and slog.Default().
type Options struct {
	// FS overrides the filesystem Pebble writes to (vfs.NewMem() in tests).
	FS     vfs.FS
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// open opens the store in dir. A read-only open requires an existing store
// and leaves the directory untouched.
func open(dir string, o *Options, readOnly bool) (*pebble.DB, error) {
	opts := &pebble.Options{
		ReadOnly:         readOnly,
		ErrorIfNotExists: readOnly,
	}
	if o != nil && o.FS != nil {
		opts.FS = o.FS
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", dir, err)
	}
	return db, nil
}

// Save replaces the snapshot stored in dir with pairs. pairs must yield
// strictly increasing keys; the whole snapshot is committed as one batch.
func Save(dir string, pairs iter.Seq2[int64, []byte], o *Options) (err error) {
	db, err := open(dir, o, false)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("persist: close: %w", cerr)
		}
	}()

	b := db.NewBatch()
	defer b.Close()

	// Drop whatever an earlier snapshot left behind.
	if err := b.DeleteRange([]byte{pairPrefix}, []byte{pairPrefix + 1}, nil); err != nil {
		return fmt.Errorf("persist: clear: %w", err)
	}

	n := 0
	for k, v := range pairs {
		if err := b.Set(EncodeKey(k), v, nil); err != nil {
			return fmt.Errorf("persist: set %d: %w", k, err)
		}
		n++
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("persist: commit: %w", err)
	}
	o.logger().Debug("snapshot saved", "dir", dir, "pairs", n)
	return nil
}

// Load streams the snapshot in dir to fn in ascending key order. The value
// passed to fn is a private copy. Loading stops at the first error from fn.
// A dir without a saved snapshot is an error; Load never creates or writes to
// dir.
func Load(dir string, fn func(key int64, value []byte) error, o *Options) (err error) {
	db, err := open(dir, o, true)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("persist: close: %w", cerr)
		}
	}()

	it, err := db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{pairPrefix},
		UpperBound: []byte{pairPrefix + 1},
	})
	if err != nil {
		return fmt.Errorf("persist: iter: %w", err)
	}
	defer it.Close()

	n := 0
	for valid := it.First(); valid; valid = it.Next() {
		k, err := DecodeKey(it.Key())
		if err != nil {
			return err
		}
		// Pebble reuses the value buffer on Next().
		v := it.Value()
		val := make([]byte, len(v))
		copy(val, v)
		if err := fn(k, val); err != nil {
			return err
		}
		n++
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("persist: iter: %w", err)
	}
	o.logger().Debug("snapshot loaded", "dir", dir, "pairs", n)
	return nil
}

// EncodeKey returns the order-preserving storage key for k.
func EncodeKey(k int64) []byte {
	b := make([]byte, keyLen)
	b[0] = pairPrefix
	binary.BigEndian.PutUint64(b[1:], uint64(k)^(1<<63))
	return b
}

// DecodeKey is the inverse of EncodeKey.
func DecodeKey(b []byte) (int64, error) {
	if len(b) != keyLen || b[0] != pairPrefix {
		return 0, fmt.Errorf("persist: malformed key %x", b)
	}
	return int64(binary.BigEndian.Uint64(b[1:]) ^ (1 << 63)), nil
}
