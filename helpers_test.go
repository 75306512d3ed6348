package mempool

import (
	"testing"
	"unsafe"

	"github.com/pkg/errors"
)

// countingSource wraps the heap and counts buffers handed out and returned.
type countingSource struct {
	gets, puts int
	fill       byte
}

func (s *countingSource) Get(size int) ([]byte, error) {
	s.gets++
	b, _ := HeapSource{}.Get(size)
	for i := range b {
		b[i] = s.fill
	}
	return b, nil
}

func (s *countingSource) Put([]byte) error {
	s.puts++
	return nil
}

type failingSource struct{}

func (failingSource) Get(size int) ([]byte, error) {
	return nil, errors.Errorf("no memory for %d bytes", size)
}

func (failingSource) Put([]byte) error { return nil }

type shortSource struct{}

func (shortSource) Get(size int) ([]byte, error) {
	return make([]byte, size/2), nil
}

func (shortSource) Put([]byte) error { return nil }

func addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// expectPanic runs fn and fails the test unless fn panics with an error
// whose cause is want.
func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", want)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v (%T) is not an error", r, r)
		}
		if errors.Cause(err) != want {
			t.Fatalf("panic = %v, want cause %v", err, want)
		}
	}()
	fn()
}
