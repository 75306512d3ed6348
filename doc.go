// Package mempool implements a region-based memory pool.
//
// # Overview
//
// A Pool hands out many small allocations by bumping a cursor through large
// blocks and releases all of them together. It suits callers that create
// lots of objects sharing one lifetime, such as a parser building a tree of
// nodes, and trades individual frees for cheap allocation and locality.
//
// # Basic Usage
//
//	p := mempool.New(0)  // empty pool, default block size
//	defer p.Discard()    // release everything at once
//
//	buf := p.Alloc(100)      // uninitialized, 8-byte aligned
//	zeroed := p.Calloc(4, 16) // zero-filled
//	name := p.Strdup("ident")
//	node := mempool.Make[Node](p)
//
// # Memory Layout
//
// Requests are rounded up to Alignment and served first-fit from the
// pool's blocks, newest first. When no block has room, a request of at
// least half the block size gets a buffer of its own; anything smaller
// starts a new block. Blocks are never rewound: bytes handed out are not
// reused while the pool is alive.
//
// # Merging
//
// Combine moves every block and oversized buffer of one pool into another
// without copying. Slices obtained from the source remain valid and are
// reported by Contains on the destination. The source is left empty and may
// be reused.
//
// # Backing Memory
//
// A Source supplies blocks: HeapSource (default), OffHeapSource
// (modernc.org/memory) or MmapSource (anonymous mappings). With the latter
// two, Discard returns memory to the system immediately.
//
// # Failure
//
// Size overflow and exhausted sources are not recoverable: the pool panics
// with an error wrapping ErrSizeOverflow or ErrOutOfMemory. Using a pool
// after Discard panics with ErrDiscarded.
//
// # Thread Safety
//
// A Pool has a single owner and no internal locking.
package mempool
