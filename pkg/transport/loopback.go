package transport

import "net"

// Pipe returns two connected Ports, suitable for wiring a host and a
// brainstem together in process for tests and the demo harness. It is
// backed by net.Pipe, which is synchronous: a write blocks until the
// corresponding read consumes it.
func Pipe() (a, b Port) {
	ca, cb := net.Pipe()
	return ca, cb
}
