// internal/writer/console.go
package writer

import (
	"fmt"
	"io"

	"dmmlogger/internal/poller"
)

// Console prints the per-record progress indicator the operator watches
// during a run: mean and acquisition time, on one growing line.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console { return &Console{out: out} }

func (c *Console) Write(rec poller.Record) error {
	_, err := fmt.Fprintf(c.out, "%f (%f) ", rec.Mean, rec.Elapsed.Seconds())
	return err
}

// Close terminates the progress line.
func (c *Console) Close() error {
	_, err := fmt.Fprintln(c.out)
	return err
}
