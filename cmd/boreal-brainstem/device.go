package main

import (
	"os"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/transport"
)

// openDevice opens path as a raw read/write byte stream, standing in for
// a serial or SPI device node.
func openDevice(path string) (transport.Port, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return f, nil
}
