// internal/transport/serial.go
package transport

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Parity names the parity bit setting of a serial line.
type Parity string

const (
	ParityNone Parity = "N"
	ParityEven Parity = "E"
	ParityOdd  Parity = "O"
)

// Settings are the line parameters for one port. Instruments fix these as
// constants; they are not user-configurable.
type Settings struct {
	Port      string
	BaudRate  int
	DataBits  int
	Parity    Parity
	StopBits  int
	AssertDTR bool
	Timeout   time.Duration
}

// maxLine bounds the text kept from one reply line. A multi-sample READ?
// reply grows with the sample count, so the bound sits well above any
// realistic batch.
const maxLine = 4096

type serialTransport struct {
	port io.ReadWriteCloser
}

// Open opens the named port with the given line parameters and applies the
// read timeout and DTR state before handing the transport out.
func Open(s Settings) (Transport, error) {
	m, err := mode(s)
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(s.Port, m)
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", s.Port, err)
	}

	if err := port.SetReadTimeout(s.Timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("transport: set timeout on %s: %w", s.Port, err)
	}

	if s.AssertDTR {
		if err := port.SetDTR(true); err != nil {
			port.Close()
			return nil, fmt.Errorf("transport: assert DTR on %s: %w", s.Port, err)
		}
	}

	return &serialTransport{port: port}, nil
}

func mode(s Settings) (*serial.Mode, error) {
	var parity serial.Parity
	switch s.Parity {
	case ParityNone:
		parity = serial.NoParity
	case ParityEven:
		parity = serial.EvenParity
	case ParityOdd:
		parity = serial.OddParity
	default:
		return nil, fmt.Errorf("transport: unsupported parity %q", s.Parity)
	}

	var stopBits serial.StopBits
	switch s.StopBits {
	case 1:
		stopBits = serial.OneStopBit
	case 2:
		stopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("transport: unsupported stop bits %d", s.StopBits)
	}

	return &serial.Mode{
		BaudRate: s.BaudRate,
		DataBits: s.DataBits,
		Parity:   parity,
		StopBits: stopBits,
	}, nil
}

func (t *serialTransport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

func (t *serialTransport) ReadByte() (byte, bool, error) {
	var buf [1]byte
	n, err := t.port.Read(buf[:])
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		// timeout with no data
		return 0, false, nil
	}
	return buf[0], true, nil
}

func (t *serialTransport) ReadLine() (string, error) {
	var buf []byte
	for {
		b, ok, err := t.ReadByte()
		if err != nil {
			return decodeASCII(buf), err
		}
		if !ok {
			break
		}
		// Past the cap the line is still consumed to its terminator, so
		// an oversized reply cannot bleed into the next read.
		if len(buf) < maxLine {
			buf = append(buf, b)
		}
		if b == '\n' {
			break
		}
	}
	return decodeASCII(buf), nil
}

func (t *serialTransport) Close() error {
	return t.port.Close()
}

// decodeASCII is the single byte-to-text step for instrument replies.
// Bytes outside the ASCII range become '?'.
func decodeASCII(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c > 0x7F {
			c = '?'
		}
		out[i] = c
	}
	return string(out)
}
