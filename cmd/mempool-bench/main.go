// Command mempool-bench drives a synthetic parser workload through mempool
// and reports how the pools behaved.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mempool-bench",
		Short:         "Exercise mempool with a synthetic parser workload",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Parse synthetic files into per-file pools and combine them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			return runBench(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "optional config file (yaml, toml or json)")
	f.Int("files", defaultConfig.Files, "number of files to parse")
	f.Int("nodes", defaultConfig.Nodes, "nodes per file")
	f.Int("literal-size", defaultConfig.LiteralSize, "bytes per string literal (every 64th node)")
	f.Int64("seed", defaultConfig.Seed, "random seed")
	f.String("source", defaultConfig.Source, "backing memory: heap, offheap or mmap")
	f.Int("block-size", defaultConfig.BlockSize, "standard block size in bytes (0 = library default)")
	f.Int("initial-size", defaultConfig.InitialSize, "size of the first block of each pool")
	f.String("metrics-file", defaultConfig.MetricsFile, "write Prometheus metrics to this textfile")
	f.String("log-level", defaultConfig.LogLevel, "DEBUG, INFO, WARN or ERROR")
	f.String("log-format", defaultConfig.LogFormat, "text or json")
	return cmd
}
