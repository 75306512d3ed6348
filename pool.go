package mempool

import (
	"log/slog"
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Alignment is the boundary every Alloc result starts on: the size of the
// widest scalar type.
const Alignment = int(unsafe.Sizeof(uint64(0)))

const maxInt = math.MaxInt

// block is a single buffer carved from the front by a bump cursor.
type block struct {
	buf []byte // usable region, exactly as returned by src
	off int    // next free byte in buf; never exceeds len(buf)
	src Source
}

// blockHeaderSize is the bookkeeping cost charged to Allocated per block.
const blockHeaderSize = int(unsafe.Sizeof(block{}))

// DefaultBlockSize is the growth size of a pool created without WithBlockSize
// (1 MiB including the block header).
const DefaultBlockSize = 1<<20 - blockHeaderSize

// Pool is a region allocator. Memory handed out by a Pool stays valid until
// Discard; it is never freed or reused individually.
//
// A Pool is not safe for concurrent use.
type Pool struct {
	blocks    []*block // creation order; Alloc scans from the end
	oversized []*block // independently obtained buffers, always full
	blockSize int
	allocated int
	source    Source
	logger    *slog.Logger
	discarded bool
}

// Option configures a Pool at creation.
type Option func(*Pool)

// WithBlockSize sets the capacity of standard blocks. n <= 0 keeps
// DefaultBlockSize.
func WithBlockSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.blockSize = n
		}
	}
}

// WithSource sets where the pool obtains backing memory. The default is
// HeapSource.
func WithSource(s Source) Option {
	return func(p *Pool) {
		if s != nil {
			p.source = s
		}
	}
}

// WithLogger sets the logger for block growth, merges and teardown.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pool. If initialSize > 0 a first block of exactly that many
// bytes is obtained immediately.
func New(initialSize int, opts ...Option) *Pool {
	p := &Pool{
		blockSize: DefaultBlockSize,
		source:    HeapSource{},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	if initialSize > 0 {
		p.newBlock(initialSize)
	}
	return p
}

// Init creates a pool into *pp unless one is already there.
func Init(pp **Pool, initialSize int, opts ...Option) {
	if *pp == nil {
		*pp = New(initialSize, opts...)
	}
}

// Alloc returns n uninitialized bytes. The result starts on an Alignment
// boundary and has cap n. Returns nil if n <= 0.
//
// Alloc panics with an error wrapping ErrSizeOverflow or ErrOutOfMemory when
// the request cannot be satisfied.
func (p *Pool) Alloc(n int) []byte {
	p.panicIfDiscarded()
	if n <= 0 {
		return nil
	}
	size := p.alignUp(n)

	// First fit, newest block first.
	for i := len(p.blocks) - 1; i >= 0; i-- {
		if b := p.blocks[i]; len(b.buf)-b.off >= size {
			return b.carve(size, n)
		}
	}

	if size >= p.blockSize/2 {
		return p.allocOversized(size, n)
	}
	return p.newBlock(p.blockSize).carve(size, n)
}

// Calloc returns count*size zeroed bytes, with the same guarantees as Alloc.
// An overflowing product panics with an error wrapping ErrSizeOverflow.
func (p *Pool) Calloc(count, size int) []byte {
	p.panicIfDiscarded()
	if count <= 0 || size <= 0 {
		return nil
	}
	b := p.Alloc(p.mulSize(count, size))
	clear(b)
	return b
}

// Contains reports whether ptr points into memory owned by the pool.
func (p *Pool) Contains(ptr unsafe.Pointer) bool {
	p.panicIfDiscarded()
	if ptr == nil {
		return false
	}
	addr := uintptr(ptr)
	for _, b := range p.blocks {
		if b.contains(addr) {
			return true
		}
	}
	for _, b := range p.oversized {
		if b.contains(addr) {
			return true
		}
	}
	return false
}

// ContainsBytes reports whether the first byte of b is owned by the pool.
// Empty slices are never contained.
func (p *Pool) ContainsBytes(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return p.Contains(unsafe.Pointer(unsafe.SliceData(b)))
}

// Combine moves all memory owned by src into p. Nothing is copied: every
// slice obtained from src stays valid and is afterwards contained by p. src
// is left empty and usable, keeping its own options.
func (p *Pool) Combine(src *Pool) {
	p.panicIfDiscarded()
	if src == nil || src == p {
		return
	}
	src.panicIfDiscarded()

	// src blocks go first so that p's own blocks keep first-fit priority.
	p.blocks = append(src.blocks, p.blocks...)
	p.oversized = append(p.oversized, src.oversized...)
	p.allocated += src.allocated

	p.logger.Debug("mempool: combine",
		"moved_blocks", len(src.blocks),
		"moved_oversized", len(src.oversized),
		"moved_bytes", src.allocated,
		"allocated", p.allocated)

	src.blocks = nil
	src.oversized = nil
	src.allocated = 0
}

// Discard returns every buffer to the Source it came from and makes the pool
// unusable. Slices obtained from the pool must not be touched afterwards.
// Any later call on the pool, Discard included, panics.
func (p *Pool) Discard() {
	p.panicIfDiscarded()
	for _, b := range p.blocks {
		p.release(b)
	}
	for _, b := range p.oversized {
		p.release(b)
	}
	p.logger.Debug("mempool: discard",
		"blocks", len(p.blocks),
		"oversized", len(p.oversized),
		"allocated", p.allocated)

	p.blocks = nil
	p.oversized = nil
	p.allocated = 0
	p.discarded = true
}

// newBlock obtains a standard block of size bytes and puts it at the front
// of the scan order.
func (p *Pool) newBlock(size int) *block {
	total := p.addSize(blockHeaderSize, size)
	b := &block{buf: p.obtain(size), src: p.source}
	p.blocks = append(p.blocks, b)
	p.allocated += total
	p.logger.Debug("mempool: new block", "size", size, "blocks", len(p.blocks))
	return b
}

// allocOversized serves a request of size bytes from its own buffer and
// returns its first n bytes.
func (p *Pool) allocOversized(size, n int) []byte {
	b := &block{buf: p.obtain(size), src: p.source}
	b.off = size
	p.oversized = append(p.oversized, b)
	p.allocated += size
	p.logger.Debug("mempool: oversized", "size", size, "oversized", len(p.oversized))
	return b.buf[:n:n]
}

// obtain gets exactly size bytes from the pool's source.
func (p *Pool) obtain(size int) []byte {
	buf, err := p.source.Get(size)
	if err != nil {
		p.fatal(errors.Wrapf(ErrOutOfMemory, "get %d bytes: %v", size, err))
	}
	if len(buf) != size {
		p.fatal(errors.Wrapf(ErrOutOfMemory, "source returned %d bytes, want %d", len(buf), size))
	}
	return buf
}

func (p *Pool) release(b *block) {
	if err := b.src.Put(b.buf); err != nil {
		p.logger.Error("mempool: release buffer", "size", len(b.buf), "err", err)
	}
}

// alignUp rounds n up to a multiple of Alignment.
func (p *Pool) alignUp(n int) int {
	if r := n & (Alignment - 1); r != 0 {
		return p.addSize(n, Alignment-r)
	}
	return n
}

// panicIfDiscarded panics if the pool has been discarded.
func (p *Pool) panicIfDiscarded() {
	if p.discarded {
		panic(ErrDiscarded)
	}
}

// carve hands out n bytes at the cursor and advances it by size.
func (b *block) carve(size, n int) []byte {
	r := b.buf[b.off : b.off+n : b.off+n]
	b.off += size
	return r
}

func (b *block) contains(addr uintptr) bool {
	if len(b.buf) == 0 {
		return false
	}
	start := uintptr(unsafe.Pointer(unsafe.SliceData(b.buf)))
	return addr >= start && addr < start+uintptr(len(b.buf))
}
