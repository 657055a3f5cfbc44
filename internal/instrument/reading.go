// internal/instrument/reading.go
package instrument

import (
	"strconv"
	"strings"
)

// Sentinel is the numeric stand-in recorded when a reading could not be
// obtained.
const Sentinel = -999.0

// Fault tells why a reading could not be obtained.
type Fault int

const (
	FaultNone Fault = iota
	FaultOverload
	FaultParse
	FaultDisconnected
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "ok"
	case FaultOverload:
		return "overload"
	case FaultParse:
		return "parse failure"
	case FaultDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Reading is one measurement result. Expected instrument anomalies never
// surface as errors; they degrade to a faulted Reading so a polling loop can
// continue without per-call error handling.
type Reading struct {
	Value float64
	Fault Fault
}

// OK wraps a successfully parsed value.
func OK(v float64) Reading { return Reading{Value: v} }

// Faulted produces a degraded reading for the given reason.
func Faulted(f Fault) Reading { return Reading{Value: Sentinel, Fault: f} }

// Float is the numeric form recorded downstream: the parsed value, or the
// sentinel when the reading is faulted.
func (r Reading) Float() float64 {
	if r.Fault != FaultNone {
		return Sentinel
	}
	return r.Value
}

// overloadText is the fixed reply the meter sends when the input exceeds the
// configured range. The reply may carry one leading framing character.
const overloadText = "9.90000000E+37"

func isOverload(s string) bool {
	if s == overloadText {
		return true
	}
	return len(s) > 0 && s[1:] == overloadText
}

// parseField maps one reply field to a Reading under the overload and
// float-parse rules shared by the meter's read paths.
func parseField(s string) Reading {
	s = strings.TrimSpace(s)
	if isOverload(s) {
		return Faulted(FaultOverload)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Faulted(FaultParse)
	}
	return OK(v)
}
