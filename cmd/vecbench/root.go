package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	jsonOut bool
	logFile string

	// stdout receives all command output.
	stdout io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "vecbench",
	Short: "Run vector workloads and report allocator behaviour",
	Long: `vecbench runs push, insert, erase and mixed workloads against a
vector backed by the Go heap or by an arena, and reports elapsed time,
storage usage and the allocator metrics collected along the way.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printInfo prints a line of text output
func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format, args...)
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
