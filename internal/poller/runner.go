// internal/poller/runner.go
package poller

import (
	"fmt"
	"log"
)

// Sink receives records as they are produced. Delivery only.
type Sink interface {
	Write(rec Record) error
}

// Run drives the configured number of cycles and delivers each record.
// A delivery failure aborts the run; instrument cleanup stays with the
// caller's deferred closes, so an abort never leaks a port.
func (p *Poller) Run(sink Sink) error {
	log.Printf("collecting %d records of sample data", p.cfg.Records)
	for i := 0; i < p.cfg.Records; i++ {
		if err := sink.Write(p.PollOnce()); err != nil {
			return fmt.Errorf("poller: record %d: %w", i, err)
		}
	}
	return nil
}
