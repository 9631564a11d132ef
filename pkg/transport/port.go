// Package transport abstracts the byte-stream link between host and
// brainstem and provides a frame-aligned reader on top of it.
package transport

import (
	"io"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/frame"
)

// Port is the collaborator interface standing in for the physical link
// (serial, SPI, or similar). A real deployment binds this to a device
// file or socket; this package ships no hardware backend, only the
// net.Pipe loopback in loopback.go.
type Port interface {
	io.ReadWriteCloser
}

// FrameReader accumulates bytes from a Port until exactly one frame
// (frame.Size bytes) is available, tolerating partial reads the way a
// real serial link delivers them. Bytes read past the end of one frame
// are kept for the next ReadFrame call.
type FrameReader struct {
	port Port
	buf  []byte
}

// NewFrameReader wraps port with frame-aligned buffering.
func NewFrameReader(port Port) *FrameReader {
	return &FrameReader{port: port}
}

// ReadFrame blocks until a full frame has been accumulated and returns
// it. It never returns a short or over-long slice: exactly frame.Size
// bytes, freshly allocated for the caller.
func (r *FrameReader) ReadFrame() ([]byte, error) {
	chunk := make([]byte, 2*frame.Size)
	for len(r.buf) < frame.Size {
		n, err := r.port.Read(chunk)
		if n > 0 {
			r.buf = append(r.buf, chunk[:n]...)
		}
		if err != nil {
			return nil, err
		}
	}
	out := make([]byte, frame.Size)
	copy(out, r.buf[:frame.Size])
	r.buf = r.buf[frame.Size:]
	return out, nil
}
