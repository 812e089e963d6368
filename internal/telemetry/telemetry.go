// Package telemetry provides in-process resource measurements used by
// operation statistics. Nothing is transmitted anywhere; these are local
// readings only.
package telemetry

import "runtime"

// MemorySampler tracks peak heap usage across an operation. Sampling is
// cooperative: callers invoke Sample at convenient points (e.g. between
// vehicles in a batch) and read the peak at the end.
type MemorySampler struct {
	peak uint64
}

// NewMemorySampler creates a sampler primed with the current heap usage.
func NewMemorySampler() *MemorySampler {
	s := &MemorySampler{}
	s.Sample()
	return s
}

// Sample records the current heap usage if it exceeds the peak so far.
func (s *MemorySampler) Sample() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	if m.HeapAlloc > s.peak {
		s.peak = m.HeapAlloc
	}
}

// PeakMB returns the peak sampled heap usage in megabytes.
func (s *MemorySampler) PeakMB() float64 {
	return float64(s.peak) / 1024 / 1024
}

// AllocMB returns the current heap usage in megabytes.
func AllocMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / 1024 / 1024
}
