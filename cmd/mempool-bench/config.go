package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings of a benchmark run.
type Config struct {
	Files       int    `mapstructure:"files"`
	Nodes       int    `mapstructure:"nodes"`
	LiteralSize int    `mapstructure:"literal-size"`
	Seed        int64  `mapstructure:"seed"`
	Source      string `mapstructure:"source"`
	BlockSize   int    `mapstructure:"block-size"`
	InitialSize int    `mapstructure:"initial-size"`
	MetricsFile string `mapstructure:"metrics-file"`
	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`
}

var defaultConfig = Config{
	Files:       64,
	Nodes:       10000,
	LiteralSize: 256,
	Seed:        1,
	Source:      "heap",
	InitialSize: 0,
	LogLevel:    "INFO",
	LogFormat:   "text",
}

const envPrefix = "MEMPOOL"

// loadConfig merges, in increasing priority, defaults, the optional config
// file, MEMPOOL_* environment variables and flags set on the command line.
func loadConfig(flags *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", file)
		}
	}
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, errors.Wrap(err, "bind flags")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.Files < 0:
		return errors.Errorf("files must not be negative, got %d", c.Files)
	case c.Nodes < 0:
		return errors.Errorf("nodes must not be negative, got %d", c.Nodes)
	case c.LiteralSize < 0:
		return errors.Errorf("literal-size must not be negative, got %d", c.LiteralSize)
	case c.BlockSize < 0:
		return errors.Errorf("block-size must not be negative, got %d", c.BlockSize)
	}
	switch c.Source {
	case "heap", "offheap", "mmap":
	default:
		return errors.Errorf("unknown source %q", c.Source)
	}
	return nil
}

// newLogger builds a slog logger writing to w.
func newLogger(c Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
