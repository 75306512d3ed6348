package mempool

import (
	"fmt"
	"unsafe"
)

// Make returns a pointer to a zeroed T stored inside the pool.
// The pointer is valid until the pool is discarded. T must not contain Go
// pointers: pool memory is not scanned by the garbage collector.
func Make[T any](p *Pool) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return new(T)
	}
	b := p.Calloc(1, size)
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// MakeSlice allocates a zeroed slice of n elements of type T inside the pool.
// Returns nil if n <= 0.
func MakeSlice[T any](p *Pool, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return make([]T, n)
	}
	b := p.Calloc(n, size)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// MakeSliceUninit is MakeSlice without zeroing; contents are undefined.
func MakeSliceUninit[T any](p *Pool, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return make([]T, n)
	}
	b := p.Alloc(p.mulSize(n, size))
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// Memdup copies b into the pool.
func (p *Pool) Memdup(b []byte) []byte {
	r := p.Alloc(len(b))
	copy(r, b)
	return r
}

// Strdup copies s into the pool.
func (p *Pool) Strdup(s string) string {
	b := p.Alloc(len(s))
	if b == nil {
		return ""
	}
	copy(b, s)
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Strndup copies at most n bytes of s into the pool.
func (p *Pool) Strndup(s string, n int) string {
	if n < len(s) {
		s = s[:max(n, 0)]
	}
	return p.Strdup(s)
}

// Sprintf formats into pool memory.
func (p *Pool) Sprintf(format string, args ...any) string {
	return p.Strdup(fmt.Sprintf(format, args...))
}
