// internal/transport/transport.go
package transport

// Transport is the byte channel an instrument session drives: write command
// bytes, read reply bytes bounded by the port timeout.
// Replies cross this boundary as decoded ASCII text; nothing downstream
// handles raw bytes.
type Transport interface {
	Write(p []byte) (int, error)

	// ReadByte reads one byte. ok is false when the timeout elapsed with
	// no data; that is not an error.
	ReadByte() (b byte, ok bool, err error)

	// ReadLine reads up to a line terminator or the port timeout and
	// returns the decoded text verbatim, terminator included. A timed-out
	// read returns whatever arrived.
	ReadLine() (string, error)

	Close() error
}
