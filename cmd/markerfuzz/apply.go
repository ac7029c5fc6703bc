package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/henderiw/markeridx/pkg/markertable"
)

type applyOptions struct {
	seed      int64
	exclusive []string
	splices   []string
	query     string
}

func newApplyCommand() *cobra.Command {
	o := applyOptions{}
	cmd := &cobra.Command{
		Use:     "apply ID=START-END...",
		Short:   "Insert markers, apply splices and print the resulting ranges",
		Example: `  markerfuzz apply a=10-20 b=15-15 --exclusive a --splice 10:0:5 --query 12-16`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return o.apply(args)
		},
	}
	cmd.Flags().Int64Var(&o.seed, "seed", 1, "index seed")
	cmd.Flags().StringSliceVar(&o.exclusive, "exclusive", nil, "ids of exclusive markers")
	cmd.Flags().StringArrayVar(&o.splices, "splice", nil, "splice as START:OLD:NEW, applied in order")
	cmd.Flags().StringVar(&o.query, "query", "", "print the markers intersecting START-END")
	return cmd
}

func (o applyOptions) apply(args []string) error {
	log := newLogger().WithName("apply")
	t := markertable.New("apply", markertable.WithSeed(o.seed), markertable.WithLogger(log))
	defer writeMetrics()

	for _, arg := range args {
		id, s, ok := strings.Cut(arg, "=")
		if !ok {
			return errors.Newf("invalid marker %q, expected ID=START-END", arg)
		}
		rng, err := markertable.ParseRange(s)
		if err != nil {
			return err
		}
		if err := t.Insert(id, rng, labels.Set{"source": "cli"}); err != nil {
			return err
		}
	}
	for _, id := range o.exclusive {
		if err := t.SetExclusive(id, true); err != nil {
			return err
		}
	}
	for _, s := range o.splices {
		start, oldExtent, newExtent, err := parseSplice(s)
		if err != nil {
			return err
		}
		if err := t.Splice(start, oldExtent, newExtent); err != nil {
			return err
		}
	}

	iter := t.Iterate()
	for iter.Next() {
		fmt.Fprintln(os.Stdout, iter.Entry().String())
	}
	if o.query == "" {
		return nil
	}
	q, err := markertable.ParseRange(o.query)
	if err != nil {
		return err
	}
	found, err := t.FindIntersecting(q.Start, q.End)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "intersecting %s: %s\n", markertable.FormatRange(q), strings.Join(found.IDs(), ","))
	return nil
}

func parseSplice(s string) (start, oldExtent, newExtent int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, 0, 0, errors.Newf("invalid splice %q, expected START:OLD:NEW", s)
	}
	var v [3]int
	for i, p := range parts {
		if v[i], err = strconv.Atoi(p); err != nil {
			return 0, 0, 0, errors.Wrapf(err, "invalid splice %q", s)
		}
	}
	return v[0], v[1], v[2], nil
}
