package mempool

// SizeInUse returns the bytes handed out so far, including alignment padding
// and oversized buffers.
func (p *Pool) SizeInUse() int {
	sum := 0
	for _, b := range p.blocks {
		sum += b.off
	}
	for _, b := range p.oversized {
		sum += len(b.buf)
	}
	return sum
}

// NumBlocks returns the number of standard blocks owned by the pool.
func (p *Pool) NumBlocks() int {
	return len(p.blocks)
}

// NumOversized returns the number of oversized buffers owned by the pool.
func (p *Pool) NumOversized() int {
	return len(p.oversized)
}

// Capacity returns the total bytes of all blocks and oversized buffers.
func (p *Pool) Capacity() int {
	sum := 0
	for _, b := range p.blocks {
		sum += len(b.buf)
	}
	for _, b := range p.oversized {
		sum += len(b.buf)
	}
	return sum
}

// Allocated returns the bytes the pool has claimed from its source,
// counting per-block bookkeeping.
func (p *Pool) Allocated() int {
	return p.allocated
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the pool has no capacity.
func (p *Pool) Utilization() float64 {
	capacity := p.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(p.SizeInUse()) / float64(capacity)
}

// BlockSize returns the capacity of standard blocks.
func (p *Pool) BlockSize() int {
	return p.blockSize
}

// Stats returns a snapshot of pool statistics.
func (p *Pool) Stats() Stats {
	return Stats{
		SizeInUse:    p.SizeInUse(),
		Capacity:     p.Capacity(),
		Allocated:    p.Allocated(),
		NumBlocks:    p.NumBlocks(),
		NumOversized: p.NumOversized(),
		BlockSize:    p.BlockSize(),
		Utilization:  p.Utilization(),
	}
}

// Stats contains statistical information about a pool.
type Stats struct {
	SizeInUse    int     // Bytes handed out
	Capacity     int     // Bytes in blocks and oversized buffers
	Allocated    int     // Bytes claimed, including block headers
	NumBlocks    int     // Standard blocks
	NumOversized int     // Oversized buffers
	BlockSize    int     // Standard block capacity
	Utilization  float64 // Ratio of used to total capacity (0.0-1.0)
}
