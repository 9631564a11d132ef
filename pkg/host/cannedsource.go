package host

import "github.com/dawsonblock/BOREAL-SILICON-X1/pkg/intent"

// CannedSource is a reference IntentSource that replays a fixed sequence
// of packets, looping once exhausted. It exists to exercise Session and
// SendLoop in tests and the demo harness without a real perception stack.
type CannedSource struct {
	packets []intent.Packet
	i       int
}

// NewCannedSource returns a CannedSource that replays packets in order,
// looping forever.
func NewCannedSource(packets ...intent.Packet) *CannedSource {
	return &CannedSource{packets: packets}
}

func (c *CannedSource) Next() (intent.Packet, error) {
	if len(c.packets) == 0 {
		return intent.Packet{}, nil
	}
	p := c.packets[c.i%len(c.packets)]
	c.i++
	return p, nil
}
