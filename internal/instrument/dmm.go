// internal/instrument/dmm.go
package instrument

import (
	"fmt"
	"log"
	"strings"
	"time"

	"dmmlogger/internal/transport"
)

// DefaultRange selects DC volts, 10 V full scale. See the 34401 manual for
// valid range syntax.
const DefaultRange = "VOLT:DC 10,DEF"

// dmmSettings are the meter's fixed line parameters: 9600 baud, 7 data bits,
// even parity, two stop bits, DTR asserted.
func dmmSettings(port string, timeout time.Duration) transport.Settings {
	return transport.Settings{
		Port:      port,
		BaudRate:  9600,
		DataBits:  7,
		Parity:    transport.ParityEven,
		StopBits:  2,
		AssertDTR: true,
		Timeout:   timeout,
	}
}

// DMM drives an Agilent 34401-class multimeter over one serial session.
type DMM struct {
	s        *Session
	rangeStr string
}

// OpenDMM connects to the meter and walks it into its configured state:
// remote mode, immediate trigger, zero trigger delay, 10 NPLC integration,
// then the measurement range. A failed port open yields a disconnected meter
// whose reads return degraded readings.
func OpenDMM(port string, timeout time.Duration, rangeStr string, debug bool) *DMM {
	if rangeStr == "" {
		rangeStr = DefaultRange
	}
	d := &DMM{
		s:        Open("dvm", dmmSettings(port, timeout), debug),
		rangeStr: rangeStr,
	}
	if d.s.Connected() {
		d.configure()
	} else {
		log.Printf("dvm: not initialising meter")
	}
	return d
}

func (d *DMM) configure() {
	d.s.Configure([]SetupCommand{
		{"putting meter into remote mode", "SYST:REM\n"},
		{"setting trigger source to immediate", "TRIG:SOUR IMM\n"},
		{"setting trigger delay to zero", "TRIG:DEL 0\n"},
		{"setting integration to 10 power-line cycles", "VOLT:NPLC 10\n"},
		{fmt.Sprintf("setting range to %s", d.rangeStr), "CONF:" + d.rangeStr + "\n"},
	})
}

func (d *DMM) Connected() bool { return d.s.Connected() }

// ReadSingle reads one voltage. Overload, a malformed reply, and a
// disconnected meter all degrade to a faulted Reading; the session stays
// usable for subsequent calls.
func (d *DMM) ReadSingle() Reading {
	if !d.s.Connected() {
		log.Printf("dvm: no connection to meter")
		return Faulted(FaultDisconnected)
	}
	if err := d.s.Send("MEAS:" + d.rangeStr + "\n"); err != nil {
		log.Printf("dvm: send failed: %v", err)
		return Faulted(FaultDisconnected)
	}
	line, err := d.s.ReadLine()
	if err != nil {
		log.Printf("dvm: read failed: %v", err)
		return Faulted(FaultParse)
	}
	r := parseField(line)
	switch r.Fault {
	case FaultOverload:
		log.Printf("dvm: overload!")
	case FaultParse:
		log.Printf("dvm: failed to convert %q to float", strings.TrimSpace(line))
	}
	return r
}

// ReadBatch requests n samples in one READ? and parses the comma-separated
// reply, each field degrading independently under the same overload and
// parse rules as ReadSingle. The returned slice can be shorter than n when
// the reply truncates; callers must check the length. Elapsed spans the
// READ? round trip, not per-sample latency.
func (d *DMM) ReadBatch(n int) ([]Reading, time.Duration) {
	if !d.s.Connected() {
		log.Printf("dvm: no connection to meter")
		return []Reading{Faulted(FaultDisconnected)}, 0
	}

	for _, cmd := range []string{
		"CONF:" + d.rangeStr + "\n",
		fmt.Sprintf("SAMPLE:COUNT %d\n", n),
	} {
		if err := d.s.Send(cmd); err != nil {
			log.Printf("dvm: send failed: %v", err)
		}
	}

	start := time.Now()
	if err := d.s.Send("READ?\n"); err != nil {
		log.Printf("dvm: send failed: %v", err)
	}
	line, err := d.s.ReadLine()
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("dvm: read failed: %v", err)
		return []Reading{Faulted(FaultParse)}, elapsed
	}

	fields := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	out := make([]Reading, 0, len(fields))
	for _, f := range fields {
		out = append(out, parseField(f))
	}
	if d.s.debug {
		log.Printf("dvm: read %d values in %v", len(out), elapsed)
	}
	return out, elapsed
}

// Close releases the meter's serial port. Safe to call from cleanup paths
// and on an already-closed meter.
func (d *DMM) Close() error { return d.s.Close() }
