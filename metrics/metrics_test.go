// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	out := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			name := f.GetName()
			for _, l := range m.GetLabel() {
				name += "/" + l.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[name] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[name] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg, "test")

	c.ObserveCount(OutcomeFilled, 20*time.Millisecond, 12, 5000)
	c.ObserveCount(OutcomeFilled, 5*time.Millisecond, 3, 10)
	c.ObserveCount(OutcomeInvalid, time.Millisecond, 0, 0)
	c.ObserveCache(true)
	c.ObserveCache(false)
	c.ObserveCache(false)

	got := gather(t, reg)
	tests := []struct {
		name string
		want float64
	}{
		{"test_count_runs_total/filled", 2},
		{"test_count_runs_total/invalid", 1},
		{"test_count_duration_seconds", 3},
		{"test_count_rounds", 2},
		{"test_count_ballot_papers", 2},
		{"test_cache_hits_total", 1},
		{"test_cache_misses_total", 2},
	}
	for _, tt := range tests {
		if got[tt.name] != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got[tt.name], tt.want)
		}
	}
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, "")

	defer func() {
		if recover() == nil {
			t.Error("Expected a second registration in the same registry to panic")
		}
	}()
	New(reg, "")
}
