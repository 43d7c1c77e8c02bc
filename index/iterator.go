package index

// Iterator walks a sequence of key/value pairs. Next must be called before
// the first Key/Value.
type Iterator interface {
	Next() bool
	Key() int64
	Value() []byte
	Error() error
	Close() error
}

// Pair is a single key/value entry.
type Pair struct {
	Key int64
	Val []byte
}

// SliceIterator iterates over a materialized, already ordered slice.
type SliceIterator struct {
	data []Pair
	idx  int
}

func NewSliceIterator(data []Pair) *SliceIterator {
	return &SliceIterator{data: data, idx: -1}
}

func (it *SliceIterator) Next() bool    { it.idx++; return it.idx < len(it.data) }
func (it *SliceIterator) Key() int64    { return it.data[it.idx].Key }
func (it *SliceIterator) Value() []byte { return it.data[it.idx].Val }
func (it *SliceIterator) Error() error  { return nil }
func (it *SliceIterator) Close() error  { return nil }
