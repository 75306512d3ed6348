//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package mempool

// MmapSource is unavailable on this platform; Get always fails.
type MmapSource struct{}

func (MmapSource) Get(int) ([]byte, error) { return nil, ErrUnsupported }

func (MmapSource) Put([]byte) error { return ErrUnsupported }
