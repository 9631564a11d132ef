package frame

import (
	"encoding/binary"
	"testing"

	bcrypto "github.com/dawsonblock/BOREAL-SILICON-X1/pkg/crypto"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/intent"
)

func testKeys() Keys {
	var k Keys
	for i := range k.MACKey {
		k.MACKey[i] = byte(i + 1)
	}
	for i := range k.CipherKey {
		k.CipherKey[i] = byte(200 - i)
	}
	return k
}

// TestRoundTripFrame is the concrete scenario from the protocol spec:
// seq=1, intent_id=2, conf_q15=27851, aux=[30, 0, ...].
func TestRoundTripFrame(t *testing.T) {
	keys := testKeys()
	p := intent.Packet{
		IntentID: intent.IDMove,
		ConfQ15:  27851,
		Aux:      intent.NewAuxFromSlice([]int16{30}),
	}

	wire := Encode(keys, 1, 1, 123456, p)
	if len(wire) != Size {
		t.Fatalf("expected %d byte frame, got %d", Size, len(wire))
	}
	if wire[0] != PrefixByte || wire[1] != LengthByte {
		t.Fatalf("unexpected frame prefix/length bytes: %02x %02x", wire[0], wire[1])
	}

	got, hdr, err := Decode(keys, 0, wire[:])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if hdr.Seq != 1 {
		t.Fatalf("expected seq=1, got %d", hdr.Seq)
	}
	if got != p {
		t.Fatalf("decoded packet mismatch: got %+v want %+v", got, p)
	}
}

// TestReplayRejection re-submits the same frame and expects KindReplay with
// no state mutation implied (Decode is side-effect free; the caller owns
// lastSeq).
func TestReplayRejection(t *testing.T) {
	keys := testKeys()
	p := intent.Packet{IntentID: intent.IDStop, ConfQ15: 32767}
	wire := Encode(keys, 1, 5, 0, p)

	_, hdr, err := Decode(keys, 4, wire[:])
	if err != nil {
		t.Fatalf("first decode should succeed: %v", err)
	}
	lastSeq := hdr.Seq

	_, _, err = Decode(keys, lastSeq, wire[:])
	if !IsKind(err, KindReplay) {
		t.Fatalf("expected REPLAY error, got %v", err)
	}
}

func TestDecodeRejectsBadPrefix(t *testing.T) {
	keys := testKeys()
	wire := Encode(keys, 1, 1, 0, intent.Packet{})
	bad := wire
	bad[0] = 0x02
	_, _, err := Decode(keys, 0, bad[:])
	if !IsKind(err, KindFramePrefix) {
		t.Fatalf("expected FRAME_PREFIX error, got %v", err)
	}
}

func TestDecodeRejectsBadMAC(t *testing.T) {
	keys := testKeys()
	wire := Encode(keys, 1, 1, 0, intent.Packet{IntentID: intent.IDStop})
	bad := wire
	bad[Size-1] ^= 0xFF
	_, _, err := Decode(keys, 0, bad[:])
	if !IsKind(err, KindMACFail) {
		t.Fatalf("expected MAC_FAIL error, got %v", err)
	}
}

// TestDecodeRejectsBadMagic builds a payload with the wrong magic value and
// a correctly computed MAC over that payload, so MAC verification passes
// and the magic check is exercised directly.
func TestDecodeRejectsBadMagic(t *testing.T) {
	keys := testKeys()
	p := intent.Packet{IntentID: intent.IDStop}
	plaintext := p.Pack()
	ciphertext := bcrypto.XORStream(keys.CipherKey, uint64(1), 0, plaintext[:])

	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:4], 0xDEADBEEF) // wrong magic
	binary.LittleEndian.PutUint16(hdr[4:6], Version)
	binary.LittleEndian.PutUint16(hdr[6:8], 1)
	binary.LittleEndian.PutUint32(hdr[8:12], 1)
	binary.LittleEndian.PutUint32(hdr[12:16], 0)

	payload := append(append([]byte{}, hdr[:]...), ciphertext...)
	mac := bcrypto.SipHash24(keys.MACKey, payload)

	wire := make([]byte, 0, Size)
	wire = append(wire, PrefixByte, LengthByte)
	wire = append(wire, payload...)
	wire = append(wire, mac[:]...)

	_, _, err := Decode(keys, 0, wire)
	if !IsKind(err, KindMagicFail) {
		t.Fatalf("expected MAGIC_FAIL, got %v", err)
	}
}

func TestDecodeRejectsShortLength(t *testing.T) {
	keys := testKeys()
	wire := Encode(keys, 1, 1, 0, intent.Packet{})
	short := wire[:Size-1]
	_, _, err := Decode(keys, 0, short)
	if !IsKind(err, KindFramePrefix) {
		t.Fatalf("expected FRAME_PREFIX error for short frame, got %v", err)
	}
}

func TestSeqMustStrictlyIncrease(t *testing.T) {
	keys := testKeys()
	wire := Encode(keys, 1, 10, 0, intent.Packet{IntentID: intent.IDStop})
	_, _, err := Decode(keys, 10, wire[:])
	if !IsKind(err, KindReplay) {
		t.Fatalf("expected REPLAY for seq == lastSeq, got %v", err)
	}
}
