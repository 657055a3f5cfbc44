// internal/poller/types.go
package poller

import (
	"time"

	"dmmlogger/internal/instrument"
)

// Record is the snapshot produced by one poll cycle.
// Sentinel readings stay inside Mean and Std; Volts keeps the per-sample
// faults countable for callers that want to re-derive clean statistics.
type Record struct {
	At      time.Time
	Volts   []instrument.Reading
	Mean    float64
	Std     float64
	Elapsed time.Duration

	// Temps is nil when no logger is attached or the scan failed;
	// TempErr carries the scan failure.
	Temps   []float64
	TempErr error
}
