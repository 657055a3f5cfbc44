// internal/writer/csv.go
package writer

import (
	"fmt"
	"os"
	"strings"

	"dmmlogger/internal/poller"
)

// csvHeader is the legacy header row. Temperature columns are appended to
// data rows without header entries, matching the historical file format.
const csvHeader = "time, timestamp, DVM1 Mean (V), DMM1 STD (V)\n"

// CSV appends one row per record to a flat file. The file is truncated and
// given its header when the writer is built, then opened, appended and
// closed once per record so a crash never loses more than the current row.
type CSV struct {
	path string
}

// NewCSV truncates path and writes the header row.
func NewCSV(path string) (*CSV, error) {
	if err := os.WriteFile(path, []byte(csvHeader), 0o644); err != nil {
		return nil, fmt.Errorf("writer: create %s: %w", path, err)
	}
	return &CSV{path: path}, nil
}

func (c *CSV) Write(rec poller.Record) error {
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("writer: open %s: %w", c.path, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %.1f, %f, %f",
		rec.At.Format("150405"),
		epochSeconds(rec),
		rec.Mean,
		rec.Std,
	)
	for _, v := range rec.Temps {
		fmt.Fprintf(&b, ", %f", v)
	}
	b.WriteByte('\n')

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("writer: append %s: %w", c.path, err)
	}
	return f.Close()
}

func (c *CSV) Close() error { return nil }

func epochSeconds(rec poller.Record) float64 {
	return float64(rec.At.Unix()) + float64(rec.At.Nanosecond())/1e9
}
