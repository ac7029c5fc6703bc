package markertable

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

type tableMetrics struct {
	inserts   *metrics.Counter
	releases  *metrics.Counter
	exclusive *metrics.Counter
	splices   *metrics.Counter
	queries   *metrics.Counter
	failures  *metrics.Counter
}

func newTableMetrics(name string) *tableMetrics {
	counter := func(op string) *metrics.Counter {
		return metrics.GetOrCreateCounter(
			fmt.Sprintf(`markertable_operations_total{table=%q,op=%q}`, name, op))
	}
	return &tableMetrics{
		inserts:   counter("insert"),
		releases:  counter("release"),
		exclusive: counter("set_exclusive"),
		splices:   counter("splice"),
		queries:   counter("query"),
		failures: metrics.GetOrCreateCounter(
			fmt.Sprintf(`markertable_failures_total{table=%q}`, name)),
	}
}

// observe counts a finished operation and its failure, if any
func (r *tableMetrics) observe(c *metrics.Counter, err error) error {
	c.Inc()
	if err != nil {
		r.failures.Inc()
	}
	return err
}
