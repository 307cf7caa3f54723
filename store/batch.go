package store

// Op is a single buffered write.
type Op struct {
	key    []byte
	value  []byte
	delete bool
}

// SetOp returns an operation writing value under key.
func SetOp(key, value []byte) Op { return Op{key: key, value: value} }

// DelOp returns an operation removing key.
func DelOp(key []byte) Op { return Op{key: key, delete: true} }

// Apply runs the operation against out.
func (o Op) Apply(out SetDeleter) {
	if o.delete {
		out.Delete(o.key)
		return
	}
	out.Set(o.key, o.value)
}

// NonAtomicBatch queues operations and applies them one by one on Write.
// It serves stores that have no native batch, such as caches.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) { b.ops = append(b.ops, SetOp(key, value)) }
func (b *NonAtomicBatch) Delete(key []byte)     { b.ops = append(b.ops, DelOp(key)) }

// Write applies the queued operations in order and clears the queue.
func (b *NonAtomicBatch) Write() {
	for _, op := range b.ops {
		op.Apply(b.out)
	}
	b.Reset()
}

// Reset drops the queued operations.
func (b *NonAtomicBatch) Reset() {
	b.ops = nil
}
