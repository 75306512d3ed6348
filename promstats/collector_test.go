package promstats

import (
	"strings"
	"testing"

	"github.com/pavanmanishd/mempool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	p := mempool.New(1024, mempool.WithBlockSize(1024))
	p.Alloc(100)
	p.Alloc(600)

	c := New("test")
	c.Add("parser", p)

	expected := `
# HELP test_pool_blocks Standard blocks owned by the pool
# TYPE test_pool_blocks gauge
test_pool_blocks{pool="parser"} 1
# HELP test_pool_in_use_bytes Bytes handed out by the pool, including alignment padding
# TYPE test_pool_in_use_bytes gauge
test_pool_in_use_bytes{pool="parser"} 704
# HELP test_pool_oversized Oversized buffers owned by the pool
# TYPE test_pool_oversized gauge
test_pool_oversized{pool="parser"} 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"test_pool_blocks", "test_pool_in_use_bytes", "test_pool_oversized")
	if err != nil {
		t.Error(err)
	}

	p.Alloc(800)
	expected = `
# HELP test_pool_oversized Oversized buffers owned by the pool
# TYPE test_pool_oversized gauge
test_pool_oversized{pool="parser"} 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "test_pool_oversized"); err != nil {
		t.Error(err)
	}
}

func TestCollectorMultiplePools(t *testing.T) {
	c := New("mempool")
	c.Add("a", mempool.New(0))
	c.Add("b", mempool.New(0))

	if n := testutil.CollectAndCount(c); n != 14 {
		t.Errorf("collected %d metrics, want 14", n)
	}

	c.Remove("a")
	if n := testutil.CollectAndCount(c, "mempool_pool_blocks"); n != 1 {
		t.Errorf("collected %d block metrics, want 1", n)
	}
}

func TestCollectorRegister(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	c := New("mempool")
	c.Add("main", mempool.New(0))
	if err := reg.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(mfs) != 7 {
		t.Errorf("gathered %d families, want 7", len(mfs))
	}
}
