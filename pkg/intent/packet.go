// Package intent defines the fixed-width plaintext record carried inside
// every Boreal wire frame. A fixed-width record is used instead of a
// dynamic map so the wire encoding is bit-exact and independent of map
// iteration order.
package intent

import "encoding/binary"

// Size is the width of the packed plaintext intent packet in bytes.
const Size = 40

// AuxLen is the number of aux parameter slots.
const AuxLen = 18

// Intent ID values (u16 on the wire).
const (
	IDNone uint16 = 0
	IDStop uint16 = 1
	IDMove uint16 = 2
	IDTurn uint16 = 3
)

// Packet is the decoded plaintext payload of a Boreal command frame.
type Packet struct {
	IntentID uint16
	ConfQ15  uint16
	Aux      [AuxLen]int16
}

// NewAuxFromSlice zero-pads or truncates values into a fixed 18-slot aux
// array, matching the reference host's "pad to 18 elements" convention.
func NewAuxFromSlice(values []int16) [AuxLen]int16 {
	var aux [AuxLen]int16
	n := len(values)
	if n > AuxLen {
		n = AuxLen
	}
	copy(aux[:n], values[:n])
	return aux
}

// Pack serializes p into the 40-byte little-endian plaintext layout.
func (p Packet) Pack() [Size]byte {
	var out [Size]byte
	binary.LittleEndian.PutUint16(out[0:2], p.IntentID)
	binary.LittleEndian.PutUint16(out[2:4], p.ConfQ15)
	for i, v := range p.Aux {
		off := 4 + i*2
		binary.LittleEndian.PutUint16(out[off:off+2], uint16(v))
	}
	return out
}

// Unpack parses a 40-byte little-endian plaintext buffer into a Packet.
// The caller must ensure buf is exactly Size bytes.
func Unpack(buf []byte) Packet {
	var p Packet
	p.IntentID = binary.LittleEndian.Uint16(buf[0:2])
	p.ConfQ15 = binary.LittleEndian.Uint16(buf[2:4])
	for i := range p.Aux {
		off := 4 + i*2
		p.Aux[i] = int16(binary.LittleEndian.Uint16(buf[off : off+2]))
	}
	return p
}
