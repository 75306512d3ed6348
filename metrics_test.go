package mempool

import "testing"

func TestPoolMetrics(t *testing.T) {
	p := New(1024, WithBlockSize(1024))

	if p.SizeInUse() != 0 {
		t.Errorf("Initial SizeInUse = %d, want 0", p.SizeInUse())
	}
	if p.NumBlocks() != 1 {
		t.Errorf("Initial NumBlocks = %d, want 1", p.NumBlocks())
	}
	if p.Capacity() != 1024 {
		t.Errorf("Initial Capacity = %d, want 1024", p.Capacity())
	}
	if p.Utilization() != 0 {
		t.Errorf("Initial Utilization = %f, want 0", p.Utilization())
	}

	p.Alloc(100) // 104 with padding
	p.Alloc(200)
	if p.SizeInUse() != 304 {
		t.Errorf("SizeInUse = %d, want 304", p.SizeInUse())
	}
	if u := p.Utilization(); u <= 0 || u > 1 {
		t.Errorf("Utilization = %f, want 0 < x <= 1", u)
	}

	p.Alloc(2000) // oversized
	if p.NumOversized() != 1 {
		t.Errorf("NumOversized = %d, want 1", p.NumOversized())
	}
	if p.Capacity() != 3024 {
		t.Errorf("Capacity = %d, want 3024", p.Capacity())
	}
	if p.Allocated() != 1024+blockHeaderSize+2000 {
		t.Errorf("Allocated = %d, want %d", p.Allocated(), 1024+blockHeaderSize+2000)
	}

	s := p.Stats()
	want := Stats{
		SizeInUse:    2304,
		Capacity:     3024,
		Allocated:    1024 + blockHeaderSize + 2000,
		NumBlocks:    1,
		NumOversized: 1,
		BlockSize:    1024,
		Utilization:  float64(2304) / float64(3024),
	}
	if s != want {
		t.Errorf("Stats = %+v, want %+v", s, want)
	}
}

func TestPoolMetricsEmpty(t *testing.T) {
	p := New(0)
	if s := p.Stats(); s != (Stats{BlockSize: DefaultBlockSize}) {
		t.Errorf("Stats of empty pool = %+v", s)
	}
}

func TestPoolMetricsAfterDiscard(t *testing.T) {
	p := New(0, WithBlockSize(1024))
	p.Alloc(500)
	p.Alloc(600)
	p.Discard()

	if p.SizeInUse() != 0 || p.Capacity() != 0 || p.Allocated() != 0 {
		t.Errorf("Stats after Discard = %+v", p.Stats())
	}
	if p.Utilization() != 0 {
		t.Errorf("Utilization after Discard = %f, want 0", p.Utilization())
	}
}
