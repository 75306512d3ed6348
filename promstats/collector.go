// Package promstats exports mempool statistics as Prometheus metrics.
package promstats

import (
	"sort"

	"github.com/pavanmanishd/mempool"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is anything that reports pool statistics; *mempool.Pool does.
type StatsSource interface {
	Stats() mempool.Stats
}

// Collector reports the statistics of a set of named pools, one label value
// per pool. Pools are read at collection time, so collect from the
// goroutine that owns them (for example with prometheus.WriteToTextfile).
type Collector struct {
	pools map[string]StatsSource

	inUse       *prometheus.Desc
	capacity    *prometheus.Desc
	allocated   *prometheus.Desc
	blocks      *prometheus.Desc
	oversized   *prometheus.Desc
	blockSize   *prometheus.Desc
	utilization *prometheus.Desc
}

// New returns an empty collector whose metric names start with namespace.
func New(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", name), help, []string{"pool"}, nil)
	}
	return &Collector{
		pools:       make(map[string]StatsSource),
		inUse:       desc("in_use_bytes", "Bytes handed out by the pool, including alignment padding"),
		capacity:    desc("capacity_bytes", "Bytes held in blocks and oversized buffers"),
		allocated:   desc("allocated_bytes", "Bytes claimed from the backing source, including block headers"),
		blocks:      desc("blocks", "Standard blocks owned by the pool"),
		oversized:   desc("oversized", "Oversized buffers owned by the pool"),
		blockSize:   desc("block_size_bytes", "Capacity of a standard block"),
		utilization: desc("utilization_ratio", "Ratio of bytes in use to capacity"),
	}
}

// Add starts reporting p under name, replacing any pool with that name.
func (c *Collector) Add(name string, p StatsSource) {
	c.pools[name] = p
}

// Remove stops reporting the pool called name.
func (c *Collector) Remove(name string) {
	delete(c.pools, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inUse
	ch <- c.capacity
	ch <- c.allocated
	ch <- c.blocks
	ch <- c.oversized
	ch <- c.blockSize
	ch <- c.utilization
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	names := make([]string, 0, len(c.pools))
	for name := range c.pools {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := c.pools[name].Stats()
		gauge := func(d *prometheus.Desc, v float64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, name)
		}
		gauge(c.inUse, float64(s.SizeInUse))
		gauge(c.capacity, float64(s.Capacity))
		gauge(c.allocated, float64(s.Allocated))
		gauge(c.blocks, float64(s.NumBlocks))
		gauge(c.oversized, float64(s.NumOversized))
		gauge(c.blockSize, float64(s.BlockSize))
		gauge(c.utilization, s.Utilization)
	}
}
