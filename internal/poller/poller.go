// internal/poller/poller.go
package poller

import (
	"errors"
	"log"
	"time"

	"dmmlogger/internal/instrument"
	"dmmlogger/internal/stats"
)

// VoltageSource is the only contract the poller needs from the meter.
type VoltageSource interface {
	ReadBatch(n int) ([]instrument.Reading, time.Duration)
}

// TemperatureSource is the optional secondary instrument.
type TemperatureSource interface {
	ReadAllChannels() ([]float64, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Samples int // samples averaged per record
	Records int // records per run
}

// Poller drives one or two instrument sessions, one record per cycle.
type Poller struct {
	cfg  Config
	dvm  VoltageSource
	temp TemperatureSource // nil when no logger is attached
}

// New creates a poller with immutable config.
func New(cfg Config, dvm VoltageSource, temp TemperatureSource) (*Poller, error) {
	if cfg.Samples <= 0 {
		return nil, errors.New("poller: sample count must be > 0")
	}
	if cfg.Records <= 0 {
		return nil, errors.New("poller: record count must be > 0")
	}
	if dvm == nil {
		return nil, errors.New("poller: voltage source required")
	}
	return &Poller{cfg: cfg, dvm: dvm, temp: temp}, nil
}

// PollOnce performs exactly one cycle. A cycle never fails: degraded
// readings land in the statistics and a temperature fault rides along in
// the record.
func (p *Poller) PollOnce() Record {
	rec := Record{At: time.Now()}

	rec.Volts, rec.Elapsed = p.dvm.ReadBatch(p.cfg.Samples)
	if len(rec.Volts) != p.cfg.Samples {
		log.Printf("poller: asked for %d samples, got %d", p.cfg.Samples, len(rec.Volts))
	}

	vals := make([]float64, len(rec.Volts))
	for i, r := range rec.Volts {
		vals[i] = r.Float()
	}
	rec.Mean = stats.Mean(vals)
	rec.Std = stats.StdDev(vals)

	if p.temp != nil {
		rec.Temps, rec.TempErr = p.temp.ReadAllChannels()
		if rec.TempErr != nil {
			log.Printf("poller: temperature scan failed: %v", rec.TempErr)
		}
	}

	return rec
}
