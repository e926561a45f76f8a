package main

import (
	"testing"
)

func TestHistogramBuckets(t *testing.T) {
	h := &histogram{
		CountPerBucket: make([]int64, 4),
		Bounds:         []float64{1, 8, 64},
	}

	// One sample per bucket: below the first bound, inside each interval,
	// and at or above the last bound.
	for _, v := range []float64{0, 1, 8, 64} {
		h.addSample(v)
	}

	if h.Count != 4 || h.Sum != 73 {
		t.Errorf("Expected count 4 sum 73, got %d %f", h.Count, h.Sum)
	}
	for i, c := range h.CountPerBucket {
		if c != 1 {
			t.Errorf("Bucket %d: expected 1 sample, got %d", i, c)
		}
	}

	if h.String() == "" {
		t.Error("Histogram expected to serialize.")
	}
}

func TestStatsNoopWithoutInit(t *testing.T) {
	globals.statsUpdate = nil

	// Safe to call from any code path before statsInit.
	statsInc("LiveSessions", 1)
	statsSet("RoomsLive", 5)
	statsAddHistSample("NotificationFanoutSize", 3)
}
