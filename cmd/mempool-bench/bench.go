package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pavanmanishd/mempool"
	"github.com/pavanmanishd/mempool/internal/workload"
	"github.com/pavanmanishd/mempool/promstats"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// newSource returns the backing memory named by cfg and a function that
// releases whatever the source still holds.
func newSource(name string) (mempool.Source, func() error, error) {
	switch name {
	case "heap":
		return mempool.HeapSource{}, func() error { return nil }, nil
	case "offheap":
		s := mempool.NewOffHeapSource()
		return s, s.Close, nil
	case "mmap":
		return mempool.MmapSource{}, func() error { return nil }, nil
	}
	return nil, nil, errors.Errorf("unknown source %q", name)
}

func runBench(cfg Config, out, logOut io.Writer) error {
	logger := newLogger(cfg, logOut)

	src, closeSource, err := newSource(cfg.Source)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Error("close source", "source", cfg.Source, "err", err)
		}
	}()

	opts := []mempool.Option{
		mempool.WithSource(src),
		mempool.WithBlockSize(cfg.BlockSize),
		mempool.WithLogger(logger),
	}
	owner := mempool.New(cfg.InitialSize, opts...)
	defer owner.Discard()

	logger.Info("starting run", "files", cfg.Files, "nodes", cfg.Nodes, "source", cfg.Source)
	start := time.Now()
	res := workload.Run(workload.Config{
		Files:       cfg.Files,
		Nodes:       cfg.Nodes,
		LiteralSize: cfg.LiteralSize,
		Seed:        cfg.Seed,
	}, owner, func() *mempool.Pool {
		return mempool.New(cfg.InitialSize, opts...)
	})
	elapsed := time.Since(start)

	if err := workload.Verify(owner, res); err != nil {
		return errors.Wrap(err, "verify")
	}
	logger.Info("run complete", "elapsed", elapsed)

	writeReport(out, owner.Stats(), res, elapsed)

	if cfg.MetricsFile != "" {
		if err := writeMetrics(cfg.MetricsFile, owner); err != nil {
			return err
		}
		logger.Info("wrote metrics", "file", cfg.MetricsFile)
	}
	return nil
}

func writeReport(w io.Writer, s mempool.Stats, res *workload.Result, elapsed time.Duration) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "files\t%s\n", humanize.Comma(int64(len(res.Files))))
	fmt.Fprintf(tw, "nodes\t%s\n", humanize.Comma(int64(res.Nodes)))
	fmt.Fprintf(tw, "names\t%s\n", humanize.Comma(int64(res.Names)))
	fmt.Fprintf(tw, "literals\t%s\n", humanize.Comma(int64(res.Literals)))
	fmt.Fprintf(tw, "blocks\t%d\n", s.NumBlocks)
	fmt.Fprintf(tw, "oversized\t%d\n", s.NumOversized)
	fmt.Fprintf(tw, "block size\t%s\n", humanize.IBytes(uint64(s.BlockSize)))
	fmt.Fprintf(tw, "in use\t%s\n", humanize.IBytes(uint64(s.SizeInUse)))
	fmt.Fprintf(tw, "capacity\t%s\n", humanize.IBytes(uint64(s.Capacity)))
	fmt.Fprintf(tw, "allocated\t%s\n", humanize.IBytes(uint64(s.Allocated)))
	fmt.Fprintf(tw, "utilization\t%.2f%%\n", s.Utilization*100)
	fmt.Fprintf(tw, "elapsed\t%s\n", elapsed.Round(time.Microsecond))
	tw.Flush()
}

func writeMetrics(path string, owner *mempool.Pool) error {
	c := promstats.New("mempool")
	c.Add("owner", owner)

	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return errors.Wrap(err, "register collector")
	}
	return errors.Wrapf(prometheus.WriteToTextfile(path, reg), "write metrics to %s", path)
}
