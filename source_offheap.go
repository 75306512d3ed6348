package mempool

import (
	"github.com/pkg/errors"
	"modernc.org/memory"
)

// OffHeapSource obtains buffers outside the Go heap with a modernc.org/memory
// allocator. Memory is returned to the allocator on Put, so a discarded pool
// really gives its bytes back. The garbage collector never scans these
// buffers: do not store Go pointers in them.
//
// An OffHeapSource is not safe for concurrent use. Close releases every
// mapping the allocator still holds.
type OffHeapSource struct {
	alloc memory.Allocator
}

// NewOffHeapSource returns an empty off-heap source.
func NewOffHeapSource() *OffHeapSource {
	return &OffHeapSource{}
}

func (s *OffHeapSource) Get(size int) ([]byte, error) {
	b, err := s.alloc.Malloc(size)
	if err != nil {
		return nil, errors.Wrapf(err, "offheap: malloc %d", size)
	}
	return b, nil
}

func (s *OffHeapSource) Put(buf []byte) error {
	return errors.Wrap(s.alloc.Free(buf), "offheap: free")
}

// Close releases all memory held by the allocator, including buffers never
// returned with Put.
func (s *OffHeapSource) Close() error {
	return errors.Wrap(s.alloc.Close(), "offheap: close")
}
