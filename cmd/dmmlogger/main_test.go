// cmd/dmmlogger/main_test.go
package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dmmlogger/internal/config"
	"dmmlogger/internal/instrument"
	"dmmlogger/internal/poller"
)

type fakeDVM struct{}

func (fakeDVM) ReadBatch(n int) ([]instrument.Reading, time.Duration) {
	return []instrument.Reading{instrument.OK(1.0)}, time.Millisecond
}

type failingSink struct{ writes int }

func (f *failingSink) Write(poller.Record) error {
	f.writes++
	return errors.New("disk full")
}

type fakeCloser struct{ closes int }

func (f *fakeCloser) Close() error {
	f.closes++
	return nil
}

func TestCollect_ClosesEverySessionWhenSinkFails(t *testing.T) {
	p, err := poller.New(poller.Config{Samples: 1, Records: 10}, fakeDVM{}, nil)
	if err != nil {
		t.Fatalf("poller.New err=%v", err)
	}

	sink := &failingSink{}
	dvm := &fakeCloser{}
	templog := &fakeCloser{}

	if err := collect(p, sink, []io.Closer{dvm, templog}); err == nil {
		t.Fatal("expected error from failing sink")
	}
	if sink.writes != 1 {
		t.Fatalf("sink written %d times before abort, want 1", sink.writes)
	}
	if dvm.closes != 1 || templog.closes != 1 {
		t.Fatalf("session closes = %d,%d, want 1,1 after mid-run abort", dvm.closes, templog.closes)
	}
}

func TestBuildWriters_ClosesBuiltWritersOnMQTTFailure(t *testing.T) {
	cfg := config.Default()
	// nothing listens on port 1; the connect must fail fast
	cfg.MQTT = &config.MQTTConfig{Server: "tcp://127.0.0.1:1", Topic: "lab/dmm"}

	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.csv")

	writers, err := buildWriters(cfg, path, &out)
	if err == nil {
		writers.Close()
		t.Fatal("expected mqtt connect failure")
	}
	if writers != nil {
		t.Fatalf("writers=%v, want nil alongside the error", writers)
	}
	// the console writer was closed on the failure path: its Close
	// terminates the progress line
	if !strings.HasSuffix(out.String(), "\n") {
		t.Fatalf("console output %q, want closed progress line", out.String())
	}
}
