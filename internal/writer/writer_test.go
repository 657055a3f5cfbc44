// internal/writer/writer_test.go
package writer

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"dmmlogger/internal/poller"
)

type countingWriter struct {
	writes int
	closes int
	fail   bool
}

func (c *countingWriter) Write(poller.Record) error {
	c.writes++
	if c.fail {
		return errors.New("delivery failed")
	}
	return nil
}

func (c *countingWriter) Close() error {
	c.closes++
	return nil
}

func TestMulti_AttemptsAllWritersOnFailure(t *testing.T) {
	bad := &countingWriter{fail: true}
	good := &countingWriter{}
	m := Multi{bad, good}

	err := m.Write(poller.Record{})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !strings.Contains(err.Error(), "delivery failed") {
		t.Fatalf("err=%v", err)
	}
	if good.writes != 1 {
		t.Fatalf("good writer skipped: writes=%d", good.writes)
	}
}

func TestMulti_ClosesEveryWriter(t *testing.T) {
	a, b := &countingWriter{}, &countingWriter{}
	if err := (Multi{a, b}).Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if a.closes != 1 || b.closes != 1 {
		t.Fatalf("closes=%d,%d", a.closes, b.closes)
	}
}

func TestConsole_ProgressFormat(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	rec := poller.Record{Mean: 1.5, Elapsed: 250 * time.Millisecond}
	if err := c.Write(rec); err != nil {
		t.Fatalf("Write err=%v", err)
	}
	if got := buf.String(); got != "1.500000 (0.250000) " {
		t.Fatalf("progress=%q", got)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatal("Close did not terminate the progress line")
	}
}

func TestRecordPayload(t *testing.T) {
	at := time.Date(2019, 5, 4, 12, 34, 56, 0, time.UTC)
	b, err := recordPayload(poller.Record{
		At:    at,
		Mean:  1.25,
		Std:   0.5,
		Temps: []float64{250.1},
	})
	if err != nil {
		t.Fatalf("recordPayload err=%v", err)
	}

	var got struct {
		Time      string    `json:"time"`
		Timestamp float64   `json:"timestamp"`
		Mean      float64   `json:"mean_v"`
		Std       float64   `json:"std_v"`
		Temps     []float64 `json:"temperatures"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Time != "123456" || got.Mean != 1.25 || got.Std != 0.5 {
		t.Fatalf("payload=%+v", got)
	}
	if got.Timestamp != float64(at.Unix()) {
		t.Fatalf("timestamp=%v", got.Timestamp)
	}
	if len(got.Temps) != 1 || got.Temps[0] != 250.1 {
		t.Fatalf("temps=%v", got.Temps)
	}
}

func TestRecordPayload_OmitsMissingTemperatures(t *testing.T) {
	b, err := recordPayload(poller.Record{At: time.Now()})
	if err != nil {
		t.Fatalf("recordPayload err=%v", err)
	}
	if strings.Contains(string(b), "temperatures") {
		t.Fatalf("payload %s should omit temperatures", b)
	}
}
