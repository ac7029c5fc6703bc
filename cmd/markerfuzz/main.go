// Package main provides markerfuzz, a driver for randomized checks of the
// marker index against the plain-list model.
package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
)

var (
	verbose    int
	metricsOut bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "markerfuzz",
		Short: "Randomized checks for the marker index",
		Long: `markerfuzz drives the marker index with seeded random operations.

Commands:
  run       compare the index with the plain-list model for a range of seeds
  apply     insert markers, apply splices and print the resulting ranges`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0, "log verbosity")
	rootCmd.PersistentFlags().BoolVar(&metricsOut, "metrics", false, "write prometheus metrics to stdout on exit")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newApplyCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbose})
}
