// internal/instrument/session.go
package instrument

import (
	"errors"
	"log"
	"strings"

	"dmmlogger/internal/transport"
)

// ErrDisconnected is returned by operations that need a live transport on a
// session that has none.
var ErrDisconnected = errors.New("instrument: session disconnected")

// Session layers an ASCII command vocabulary over one exclusively-owned
// transport. A session is either fully connected or fully disconnected;
// a failed open yields a disconnected session whose operations degrade
// immediately without touching the transport.
type Session struct {
	name  string
	tr    transport.Transport
	debug bool
}

// Open attempts to open the transport. An open failure is reported to the
// operator, not returned: the caller gets a disconnected session.
func Open(name string, s transport.Settings, debug bool) *Session {
	tr, err := transport.Open(s)
	if err != nil {
		log.Printf("ERROR %s: could not open serial port %s: %v", name, s.Port, err)
		return &Session{name: name, debug: debug}
	}
	return &Session{name: name, tr: tr, debug: debug}
}

func (s *Session) Connected() bool { return s.tr != nil }

// Send writes one command without waiting for a reply. Command strings carry
// their own line terminators.
func (s *Session) Send(cmd string) error {
	if s.tr == nil {
		return ErrDisconnected
	}
	if s.debug {
		log.Printf("%s: sending %q", s.name, cmd)
	}
	_, err := s.tr.Write([]byte(cmd))
	return err
}

// SendExpect sends a command and reads one reply line within the transport
// timeout. An empty string means the instrument stayed silent.
func (s *Session) SendExpect(cmd string) (string, error) {
	if err := s.Send(cmd); err != nil {
		return "", err
	}
	return s.tr.ReadLine()
}

// ReadLine reads one reply line within the transport timeout.
func (s *Session) ReadLine() (string, error) {
	if s.tr == nil {
		return "", ErrDisconnected
	}
	return s.tr.ReadLine()
}

// SetupCommand is one step of an instrument's post-connect sequence.
type SetupCommand struct {
	Label string
	Cmd   string
}

// Configure issues the ordered setup commands. Each step is advisory: reply
// bytes are drained and logged for diagnostics, and an unexpected reply
// never aborts the sequence.
func (s *Session) Configure(cmds []SetupCommand) {
	for _, c := range cmds {
		log.Printf("%s: %s", s.name, c.Label)
		reply, err := s.SendExpect(c.Cmd)
		if err != nil {
			log.Printf("%s: setup %q failed: %v", s.name, strings.TrimSpace(c.Cmd), err)
			continue
		}
		if reply != "" {
			log.Printf("%s: received %q", s.name, strings.TrimSpace(reply))
		}
	}
}

// Close drains residual reply bytes then releases the transport. The handle
// is released exactly once; closing an already-disconnected session is a
// no-op with a diagnostic, not a fault.
func (s *Session) Close() error {
	if s.tr == nil {
		log.Printf("%s: already disconnected - doing nothing", s.name)
		return nil
	}
	s.drain()
	err := s.tr.Close()
	s.tr = nil
	log.Printf("%s: connection closed", s.name)
	return err
}

// drain reads leftover bytes one at a time until a read times out empty.
// Bounded by the transport timeout, not by a byte count.
func (s *Session) drain() {
	for {
		b, ok, err := s.tr.ReadByte()
		if err != nil || !ok {
			return
		}
		if s.debug {
			log.Printf("%s: drained %#02x", s.name, b)
		}
	}
}
