// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded by ObserveCount.
const (
	OutcomeFilled     = "filled"
	OutcomeDeadlocked = "deadlocked"
	OutcomeInvalid    = "invalid"
	OutcomeError      = "error"
)

// Collector holds the server's count metrics.
type Collector struct {
	counts      *prometheus.CounterVec
	duration    prometheus.Histogram
	rounds      prometheus.Histogram
	ballots     prometheus.Histogram
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// New registers the collector's metrics with reg, or with
// prometheus.DefaultRegisterer if reg is nil.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "senate_recount"
	}

	c := &Collector{
		counts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "count",
			Name:      "runs_total",
			Help:      "Total counts run by outcome (filled, deadlocked, invalid, error).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "count",
			Name:      "duration_seconds",
			Help:      "Time taken to run a count, ballot validation included.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms .. ~4.4min
		}),
		rounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "count",
			Name:      "rounds",
			Help:      "Rounds taken by completed counts.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 .. 512
		}),
		ballots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "count",
			Name:      "ballot_papers",
			Help:      "Formal ballot papers per count.",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 7), // 10 .. 10M
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Count requests answered from the result cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Count requests that had to run the count.",
		}),
	}
	reg.MustRegister(c.counts, c.duration, c.rounds, c.ballots, c.cacheHits, c.cacheMisses)
	return c
}

// ObserveCount records one count attempt. rounds and papers are ignored
// unless the count finished.
func (c *Collector) ObserveCount(outcome string, took time.Duration, rounds int, papers int64) {
	c.counts.WithLabelValues(outcome).Inc()
	c.duration.Observe(took.Seconds())
	if outcome == OutcomeFilled || outcome == OutcomeDeadlocked {
		c.rounds.Observe(float64(rounds))
		c.ballots.Observe(float64(papers))
	}
}

// ObserveCache records whether a request was served from the cache.
func (c *Collector) ObserveCache(hit bool) {
	if hit {
		c.cacheHits.Inc()
		return
	}
	c.cacheMisses.Inc()
}
