package ingest

import "time"

const (
	// MinSampleInterval is the shortest window the meter measures over.
	MinSampleInterval = 500 * time.Millisecond
	// smoothing weighs each new window against the running rate.
	smoothing = 0.5
)

// Meter turns a monotonically increasing event count into a smoothed
// per-second rate.
type Meter struct {
	last      time.Time
	lastCount int
	rate      float64
	primed    bool
}

// Reset starts a new measurement window at now with the given count.
func (m *Meter) Reset(now time.Time, count int) {
	m.last = now
	m.lastCount = count
	m.rate = 0
	m.primed = false
}

// Sample folds the events seen since the last sample into the rate. Calls
// less than MinSampleInterval apart are ignored.
func (m *Meter) Sample(now time.Time, count int) bool {
	elapsed := now.Sub(m.last)
	if elapsed < MinSampleInterval {
		return false
	}
	window := float64(count-m.lastCount) / elapsed.Seconds()
	if m.primed {
		m.rate = smoothing*window + (1-smoothing)*m.rate
	} else {
		m.rate = window
		m.primed = true
	}
	m.last = now
	m.lastCount = count
	return true
}

// Rate returns the current smoothed rate.
func (m *Meter) Rate() float64 { return m.rate }
