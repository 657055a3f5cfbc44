// internal/instrument/templog.go
package instrument

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"dmmlogger/internal/transport"
)

// templogSettings are the Lakeshore 218's fixed line parameters: 9600 baud,
// 7 data bits, even parity, one stop bit, no flow control.
func templogSettings(port string, timeout time.Duration) transport.Settings {
	return transport.Settings{
		Port:     port,
		BaudRate: 9600,
		DataBits: 7,
		Parity:   transport.ParityEven,
		StopBits: 1,
		Timeout:  timeout,
	}
}

// TempLogger drives a Lakeshore 218-class temperature monitor. The
// instrument answers CRDG? queries directly; there is no setup phase, so a
// freshly opened session is already configured.
type TempLogger struct {
	s *Session
}

// OpenTempLogger connects to the temperature monitor. A failed port open
// yields a disconnected logger whose reads return ErrDisconnected.
func OpenTempLogger(port string, timeout time.Duration, debug bool) *TempLogger {
	s := Open("templog", templogSettings(port, timeout), debug)
	if s.Connected() {
		log.Printf("templog: no initialisation required")
	}
	return &TempLogger{s: s}
}

func (t *TempLogger) Connected() bool { return t.s.Connected() }

// ReadChannel reads the current temperature of one input.
func (t *TempLogger) ReadChannel(ch int) (float64, error) {
	if !t.s.Connected() {
		return Sentinel, ErrDisconnected
	}
	line, err := t.s.SendExpect(fmt.Sprintf("CRDG? %d\r\n", ch))
	if err != nil {
		return Sentinel, err
	}
	line = strings.TrimSpace(line)
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return Sentinel, fmt.Errorf("templog: channel %d: parse %q: %w", ch, line, err)
	}
	return v, nil
}

// ReadAllChannels reads every input in one CRDG? 0 query. Unlike the meter's
// read paths a malformed field is a hard error here, not a degraded reading:
// a temperature that fails to parse aborts the scan.
func (t *TempLogger) ReadAllChannels() ([]float64, error) {
	if !t.s.Connected() {
		return nil, ErrDisconnected
	}
	line, err := t.s.SendExpect("CRDG? 0\r\n")
	if err != nil {
		return nil, err
	}
	fields := strings.Split(stripFraming(line), ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("templog: parse %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Close releases the logger's serial port. Safe to call from cleanup paths
// and on an already-closed logger.
func (t *TempLogger) Close() error { return t.s.Close() }

// stripFraming removes the instrument's reply framing: the line terminator
// plus one trailing byte.
func stripFraming(s string) string {
	if len(s) <= 3 {
		return ""
	}
	return s[:len(s)-3]
}
