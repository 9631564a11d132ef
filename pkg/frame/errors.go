package frame

import "fmt"

// Kind enumerates the ways a wire frame can fail to decode. Every kind is a
// local, non-propagating condition: the caller drops the frame and
// continues without advancing session state.
type Kind int

const (
	// KindFramePrefix means the prefix or length byte did not match.
	KindFramePrefix Kind = iota
	// KindMACFail means the recomputed MAC did not match the frame's MAC.
	KindMACFail
	// KindMagicFail means the (unencrypted) header's magic constant was wrong.
	KindMagicFail
	// KindReplay means seq was not strictly greater than the last accepted seq.
	KindReplay
)

func (k Kind) String() string {
	switch k {
	case KindFramePrefix:
		return "FRAME_PREFIX"
	case KindMACFail:
		return "MAC_FAIL"
	case KindMagicFail:
		return "MAGIC_FAIL"
	case KindReplay:
		return "REPLAY"
	default:
		return "UNKNOWN"
	}
}

// Error is returned by Decode for any rejected frame. Kind lets callers
// branch without string matching, mirroring ntag424.SWError.
type Error struct {
	Kind Kind
	Seq  uint32 // populated for KindReplay
}

func (e *Error) Error() string {
	if e.Kind == KindReplay {
		return fmt.Sprintf("frame: %s (seq=%d)", e.Kind, e.Seq)
	}
	return fmt.Sprintf("frame: %s", e.Kind)
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, k Kind) bool {
	fe, ok := err.(*Error)
	return ok && fe.Kind == k
}
