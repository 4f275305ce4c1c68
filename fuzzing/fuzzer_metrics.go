package fuzzing

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuzzerMetrics represents a struct tracking metrics for a Fuzzer run.
type FuzzerMetrics struct {
	// startTime describes the time the campaign's fuzzing loop began.
	startTime time.Time

	// callsTested describes the number of target calls executed and checked so far.
	callsTested uint64
}

// newFuzzerMetrics obtains a new FuzzerMetrics struct anchored at the current time.
func newFuzzerMetrics() *FuzzerMetrics {
	return &FuzzerMetrics{
		startTime: time.Now(),
	}
}

// CallsTested returns the number of target calls executed and checked so far.
func (m *FuzzerMetrics) CallsTested() uint64 {
	return m.callsTested
}

// ElapsedSeconds returns the wall-clock duration of the campaign so far, in seconds.
func (m *FuzzerMetrics) ElapsedSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}

// CallsPerSecond returns the average call throughput of the campaign so far, rounded to whole calls.
func (m *FuzzerMetrics) CallsPerSecond() decimal.Decimal {
	elapsed := m.ElapsedSeconds()
	if elapsed <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(m.callsTested)).Div(decimal.NewFromFloat(elapsed)).Round(0)
}
