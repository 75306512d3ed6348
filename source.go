package mempool

import (
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
)

// Source supplies and reclaims the buffers a Pool carves allocations from.
//
// Get must return a slice of exactly size bytes whose first byte is aligned
// to at least Alignment. Put receives the same slice Get returned, once.
type Source interface {
	Get(size int) ([]byte, error)
	Put(buf []byte) error
}

// HeapSource obtains buffers from the Go heap. Put drops nothing itself; the
// garbage collector reclaims a buffer once no slice into it is reachable.
type HeapSource struct{}

// Get allocates size bytes backed by a []uint64 so the start is 8-byte aligned.
// Sizes the runtime refuses to allocate are reported as errors.
func (HeapSource) Get(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			buf, err = nil, errors.Wrapf(rerr, "heap: allocate %d", size)
		}
	}()

	n := size / Alignment
	if size%Alignment != 0 {
		n++
	}
	words := make([]uint64, n)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size), nil
}

// Put is a no-op.
func (HeapSource) Put([]byte) error { return nil }
