package main

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

const (
	allocatorHeap  = "heap"
	allocatorArena = "arena"
)

var workloads = []string{"push", "insert-front", "insert-mid", "erase", "mixed"}

// Config describes one vecbench run. It is read from a TOML file and then
// overridden by command-line flags.
type Config struct {
	Workload  string `toml:"workload"`
	Allocator string `toml:"allocator"`
	Ops       int    `toml:"ops"`
	Seed      int64  `toml:"seed"`
	// Reserve is the capacity requested before the workload starts.
	Reserve int `toml:"reserve"`
	// ChunkSize is the arena chunk size in bytes; 0 picks the arena default.
	ChunkSize int `toml:"arena-chunk-size"`

	Log LogConfig `toml:"log"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"`
	MaxDays    int    `toml:"max-days"`
	MaxBackups int    `toml:"max-backups"`
}

func defaultConfig() Config {
	return Config{
		Workload:  "push",
		Allocator: allocatorHeap,
		Ops:       100000,
		Seed:      1,
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSize:    64,
			MaxDays:    7,
			MaxBackups: 3,
		},
	}
}

// loadConfig returns the defaults overlaid with the file at path, if any.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

func (c Config) validate() error {
	known := false
	for _, w := range workloads {
		known = known || w == c.Workload
	}
	if !known {
		return errors.Newf("unknown workload %q (want one of %v)", c.Workload, workloads)
	}
	if c.Allocator != allocatorHeap && c.Allocator != allocatorArena {
		return errors.Newf("unknown allocator %q (want %s or %s)", c.Allocator, allocatorHeap, allocatorArena)
	}
	if c.Ops < 0 {
		return errors.Newf("ops must not be negative, got %d", c.Ops)
	}
	if c.Reserve < 0 {
		return errors.Newf("reserve must not be negative, got %d", c.Reserve)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as TOML",
		Long: `The config command prints the default configuration. Save it to a
file, edit it and pass it to run with --config.

Example:
  vecbench config > bench.toml
  vecbench run --config bench.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig()
		},
	}
}

func runConfig() error {
	return toml.NewEncoder(stdout).Encode(defaultConfig())
}
