// Package frame implements the Boreal wire format: a sequence-numbered,
// magic-prefixed, encrypt-then-MAC packet carrying a 40-byte intent.Packet.
// Encode runs on the host; Decode runs on the brainstem. The two must stay
// bit-exact with each other since they share no process memory — only the
// 66-byte wire frame.
package frame

import (
	"bytes"
	"encoding/binary"

	bcrypto "github.com/dawsonblock/BOREAL-SILICON-X1/pkg/crypto"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/intent"
)

const (
	// PrefixByte is the constant first byte of every wire frame.
	PrefixByte = 0x01
	// LengthByte is the constant ciphertext-length byte of every wire frame.
	LengthByte = 0x40 // 64

	// Magic is the constant header magic value.
	Magic uint32 = 0xB0A1E1A1
	// Version is the currently supported header version.
	Version uint16 = 1

	headerSize  = 16
	payloadSize = headerSize + intent.Size // 56
	// Size is the total wire frame length: prefix + length + payload + mac.
	Size = 1 + 1 + payloadSize + bcrypto.MACSize // 66
)

// Keys holds the session-static shared secrets used on both sides of the
// link: a 128-bit MAC key and a 256-bit cipher key.
type Keys struct {
	MACKey    [16]byte
	CipherKey [bcrypto.KeySize]byte
}

// Header is the 16-byte authenticated-but-unencrypted frame header.
type Header struct {
	Magic   uint32
	Version uint16
	ModelID uint16
	Seq     uint32
	TMs     uint32
}

func (h Header) pack() [headerSize]byte {
	var out [headerSize]byte
	binary.LittleEndian.PutUint32(out[0:4], h.Magic)
	binary.LittleEndian.PutUint16(out[4:6], h.Version)
	binary.LittleEndian.PutUint16(out[6:8], h.ModelID)
	binary.LittleEndian.PutUint32(out[8:12], h.Seq)
	binary.LittleEndian.PutUint32(out[12:16], h.TMs)
	return out
}

func unpackHeader(buf []byte) Header {
	return Header{
		Magic:   binary.LittleEndian.Uint32(buf[0:4]),
		Version: binary.LittleEndian.Uint16(buf[4:6]),
		ModelID: binary.LittleEndian.Uint16(buf[6:8]),
		Seq:     binary.LittleEndian.Uint32(buf[8:12]),
		TMs:     binary.LittleEndian.Uint32(buf[12:16]),
	}
}

// Encode builds a 66-byte wire frame for the given intent packet, sender
// identity, sequence number and timestamp. The cipher nonce is seq as a
// 64-bit value; the initial block counter is 0.
func Encode(keys Keys, modelID uint16, seq uint32, tMs uint32, p intent.Packet) [Size]byte {
	plaintext := p.Pack()
	ciphertext := bcrypto.XORStream(keys.CipherKey, uint64(seq), 0, plaintext[:])

	hdr := Header{Magic: Magic, Version: Version, ModelID: modelID, Seq: seq, TMs: tMs}
	hdrBytes := hdr.pack()

	payload := make([]byte, 0, payloadSize)
	payload = append(payload, hdrBytes[:]...)
	payload = append(payload, ciphertext...)

	mac := bcrypto.SipHash24(keys.MACKey, payload)

	var out [Size]byte
	out[0] = PrefixByte
	out[1] = LengthByte
	copy(out[2:2+payloadSize], payload)
	copy(out[2+payloadSize:], mac[:])
	return out
}

// Decode parses and authenticates a 66-byte wire frame. lastSeq is the
// highest seq previously accepted for this sender (0 if none yet). On
// success, the decoded intent and header are returned; the header's Seq
// is the new lastSeq, which the caller is responsible for committing to
// its session state — Decode itself has no side effects.
//
// Order matters: the MAC is checked before anything in the header or
// ciphertext is trusted, and the sequence check runs only after the MAC
// check passes.
func Decode(keys Keys, lastSeq uint32, raw []byte) (intent.Packet, Header, error) {
	if len(raw) != Size || raw[0] != PrefixByte || raw[1] != LengthByte {
		return intent.Packet{}, Header{}, &Error{Kind: KindFramePrefix}
	}

	payload := raw[2 : 2+payloadSize]
	gotMAC := raw[2+payloadSize:]

	wantMAC := bcrypto.SipHash24(keys.MACKey, payload)
	if !bytes.Equal(gotMAC, wantMAC[:]) {
		return intent.Packet{}, Header{}, &Error{Kind: KindMACFail}
	}

	hdr := unpackHeader(payload[:headerSize])
	if hdr.Magic != Magic {
		return intent.Packet{}, Header{}, &Error{Kind: KindMagicFail}
	}
	if hdr.Seq <= lastSeq {
		return intent.Packet{}, Header{}, &Error{Kind: KindReplay, Seq: hdr.Seq}
	}

	ciphertext := payload[headerSize:]
	plaintext := bcrypto.XORStream(keys.CipherKey, uint64(hdr.Seq), 0, ciphertext)
	p := intent.Unpack(plaintext)

	return p, hdr, nil
}
