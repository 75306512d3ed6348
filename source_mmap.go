//go:build linux || darwin || freebsd || netbsd || openbsd

package mempool

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// MmapSource backs every buffer with its own anonymous private mapping.
// Put unmaps it. Mappings are page-granular, so this suits large block sizes.
type MmapSource struct{}

func (MmapSource) Get(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %d", size)
	}
	return b, nil
}

func (MmapSource) Put(buf []byte) error {
	return errors.Wrap(unix.Munmap(buf), "munmap")
}
