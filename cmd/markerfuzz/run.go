package main

import (
	"fmt"
	"os"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/henderiw/markeridx/pkg/difftest"
)

var (
	runsTotal     = metrics.NewCounter("markerfuzz_runs_total")
	mismatchTotal = metrics.NewCounter("markerfuzz_mismatches_total")
	runDuration   = metrics.NewHistogram("markerfuzz_run_duration_seconds")
)

type runOptions struct {
	seed    int64
	runs    int
	ops     int
	queries int
}

func newRunCommand() *cobra.Command {
	o := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare the index with the plain-list model",
		RunE: func(_ *cobra.Command, _ []string) error {
			return o.run()
		},
	}
	cmd.Flags().Int64Var(&o.seed, "seed", 1, "first seed")
	cmd.Flags().IntVar(&o.runs, "runs", 1000, "number of runs, seeds seed..seed+runs-1")
	cmd.Flags().IntVar(&o.ops, "ops", 50, "operations per run")
	cmd.Flags().IntVar(&o.queries, "queries", 10, "intersection queries checked per run")
	return cmd
}

func (o runOptions) run() error {
	log := newLogger().WithName("run")
	runner := difftest.New(
		difftest.WithOps(o.ops),
		difftest.WithQueries(o.queries),
		difftest.WithLogger(log),
	)
	defer writeMetrics()

	for seed := o.seed; seed < o.seed+int64(o.runs); seed++ {
		runsTotal.Inc()
		start := time.Now()
		err := runner.Run(seed)
		runDuration.UpdateDuration(start)
		if err == nil {
			continue
		}
		mismatchTotal.Inc()
		var mismatch *difftest.MismatchError
		if errors.As(err, &mismatch) {
			fmt.Fprintf(os.Stdout, "seed %d failed: %s\nops:\n%# v\n", mismatch.Seed, mismatch.Reason, pretty.Formatter(mismatch.Ops))
		}
		return errors.Wrapf(err, "run %d of %d", seed-o.seed+1, o.runs)
	}
	log.Info("all runs passed", "runs", o.runs, "firstSeed", o.seed)
	return nil
}

func writeMetrics() {
	if metricsOut {
		metrics.WritePrometheus(os.Stdout, false)
	}
}
