// internal/writer/writer.go
package writer

import (
	"errors"
	"strings"

	"dmmlogger/internal/poller"
)

// Writer delivers one record somewhere. Delivery only: no statistics, no
// interpretation, no retries.
type Writer interface {
	Write(rec poller.Record) error
	Close() error
}

// Multi fans a record out to every writer. All writers are attempted even
// when one fails; the failures are joined into one error.
type Multi []Writer

func (m Multi) Write(rec poller.Record) error {
	var errs []string
	for _, w := range m {
		if err := w.Write(rec); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New("writer: " + strings.Join(errs, " | "))
	}
	return nil
}

func (m Multi) Close() error {
	var errs []string
	for _, w := range m {
		if err := w.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New("writer: " + strings.Join(errs, " | "))
	}
	return nil
}
