// internal/instrument/fake_test.go
package instrument

import "errors"

// fakeTransport scripts instrument replies for session tests. Each ReadLine
// consumes one entry of replies; residue is what Close drains byte-wise.
type fakeTransport struct {
	writes    []string
	replies   []string
	residue   []byte
	closed    int
	failWrite bool
}

func (f *fakeTransport) Write(p []byte) (int, error) {
	if f.failWrite {
		return 0, errors.New("write failed")
	}
	f.writes = append(f.writes, string(p))
	return len(p), nil
}

func (f *fakeTransport) ReadByte() (byte, bool, error) {
	if len(f.residue) == 0 {
		return 0, false, nil
	}
	b := f.residue[0]
	f.residue = f.residue[1:]
	return b, true, nil
}

func (f *fakeTransport) ReadLine() (string, error) {
	if len(f.replies) == 0 {
		return "", nil
	}
	line := f.replies[0]
	f.replies = f.replies[1:]
	return line, nil
}

func (f *fakeTransport) Close() error {
	f.closed++
	return nil
}

func fakeSession(ft *fakeTransport) *Session {
	return &Session{name: "fake", tr: ft}
}

func disconnectedSession() *Session {
	return &Session{name: "fake"}
}
