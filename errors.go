package mempool

import "github.com/pkg/errors"

var (
	// ErrSizeOverflow reports a size computation that does not fit in an int.
	ErrSizeOverflow = errors.New("mempool: size overflow")
	// ErrOutOfMemory reports that a Source could not supply backing memory.
	ErrOutOfMemory = errors.New("mempool: out of memory")
	// ErrDiscarded reports use of a pool after Discard.
	ErrDiscarded = errors.New("mempool: use after Discard")
	// ErrUnsupported reports a Source that is unavailable on this platform.
	ErrUnsupported = errors.New("mempool: unsupported on this platform")
)

// fatal panics with err. Conditions routed here have no degraded mode.
func (p *Pool) fatal(err error) {
	p.logger.Error("mempool: fatal", "err", err)
	panic(err)
}

// addSize returns a+b, panicking on overflow.
func (p *Pool) addSize(a, b int) int {
	if a > maxInt-b {
		p.fatal(errors.Wrapf(ErrSizeOverflow, "%d + %d", a, b))
	}
	return a + b
}

// mulSize returns a*b, panicking on overflow.
func (p *Pool) mulSize(a, b int) int {
	if a != 0 && b > maxInt/a {
		p.fatal(errors.Wrapf(ErrSizeOverflow, "%d * %d", a, b))
	}
	return a * b
}
