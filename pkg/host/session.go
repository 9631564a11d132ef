// Package host implements the host-side half of the link: an
// owned sequence counter, frame construction, and a send loop driven by
// an intent source.
package host

import (
	"time"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/frame"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/intent"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/transport"
)

// Clock abstracts wall-clock access, standing in for clock.now_ms().
type Clock interface {
	NowMS() uint32
}

// SystemClock is the Clock backed by the process's real time, with an
// epoch fixed at construction so NowMS stays within range for a long-
// running process.
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock returns a SystemClock epoched to now.
func NewSystemClock(now time.Time) *SystemClock {
	return &SystemClock{epoch: now}
}

func (c *SystemClock) NowMS() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

// IntentSource supplies the next intent packet to frame and send,
// standing in for intent_source.next().
type IntentSource interface {
	Next() (intent.Packet, error)
}

// Session owns the host's sequence counter and sending keys. Seq starts
// at zero and must be incremented on every frame actually written to the
// wire, per the protocol's strictly-increasing sequence requirement.
type Session struct {
	Keys    frame.Keys
	ModelID uint16
	Clock   Clock

	seq uint32
}

// NewSession builds a Session ready to send frames with the given keys
// and model id.
func NewSession(keys frame.Keys, modelID uint16, clock Clock) *Session {
	return &Session{Keys: keys, ModelID: modelID, Clock: clock}
}

// BuildFrame encodes p as the next frame in sequence and advances the
// session's sequence counter. It does not touch the wire.
func (s *Session) BuildFrame(p intent.Packet) [frame.Size]byte {
	s.seq++
	return frame.Encode(s.Keys, s.ModelID, s.seq, s.Clock.NowMS(), p)
}

// Seq reports the last sequence number issued.
func (s *Session) Seq() uint32 {
	return s.seq
}

// SendLoop pulls intents from src at rate and writes encoded frames to
// port until src.Next or the write fails, or ctx-less caller stops it via
// the returned stop function. It is a thin reference driver; a real host
// binary is expected to build its own loop around Session.BuildFrame if
// it needs finer control.
func SendLoop(s *Session, src IntentSource, port transport.Port, rate time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(rate)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p, err := src.Next()
				if err != nil {
					return
				}
				f := s.BuildFrame(p)
				if _, err := port.Write(f[:]); err != nil {
					return
				}
			}
		}
	}()
	return func() { close(done) }
}
