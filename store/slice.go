package store

// SliceIterator iterates over models loaded in memory, in slice order.
type SliceIterator struct {
	models []Model
	pos    int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.models)
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("iterator is exhausted")
	}
	return s.models[s.pos]
}

func (s *SliceIterator) Next() {
	s.current()
	s.pos++
}

func (s *SliceIterator) Key() []byte   { return s.current().Key }
func (s *SliceIterator) Value() []byte { return s.current().Value }
func (s *SliceIterator) Close()        { s.models = nil }

// EmptyKVStore holds nothing and ignores writes. It is the bottom layer of
// MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) []byte { return nil }
func (EmptyKVStore) Has([]byte) bool   { return false }
func (EmptyKVStore) Set(_, _ []byte)   {}
func (EmptyKVStore) Delete([]byte)     {}

func (EmptyKVStore) Iterator(_, _ []byte) Iterator {
	return NewSliceIterator(nil)
}

func (EmptyKVStore) ReverseIterator(_, _ []byte) Iterator {
	return NewSliceIterator(nil)
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}
