package crypto

import "encoding/binary"

// MACSize is the width of a SipHash-2-4 output in bytes.
const MACSize = 8

func rotl64(x uint64, b uint) uint64 {
	return (x << b) | (x >> (64 - b))
}

// SipHash24 computes the SipHash-2-4 MAC of data under a 128-bit key,
// encoded as two little-endian 64-bit halves. It is a deterministic pure
// function: flipping any bit of key or data changes the output with
// overwhelming probability.
func SipHash24(key [16]byte, data []byte) [MACSize]byte {
	k0 := binary.LittleEndian.Uint64(key[0:8])
	k1 := binary.LittleEndian.Uint64(key[8:16])

	v0 := 0x736f6d6570736575 ^ k0
	v1 := 0x646f72616e646f6d ^ k1
	v2 := 0x6c7967656e657261 ^ k0
	v3 := 0x7465646279746573 ^ k1

	round := func() {
		v0 += v1
		v1 = rotl64(v1, 13)
		v1 ^= v0
		v0 = rotl64(v0, 32)
		v2 += v3
		v3 = rotl64(v3, 16)
		v3 ^= v2
		v0 += v3
		v3 = rotl64(v3, 21)
		v3 ^= v0
		v2 += v1
		v1 = rotl64(v1, 17)
		v1 ^= v2
		v2 = rotl64(v2, 32)
	}

	length := len(data)
	end := length - (length % 8)
	for i := 0; i < end; i += 8 {
		m := binary.LittleEndian.Uint64(data[i : i+8])
		v3 ^= m
		round()
		round()
		v0 ^= m
	}

	left := length % 8
	var last uint64
	last = uint64(length) << 56
	if left > 0 {
		var tail [8]byte
		copy(tail[:left], data[length-left:])
		last |= binary.LittleEndian.Uint64(tail[:])
	}

	v3 ^= last
	round()
	round()
	v0 ^= last

	v2 ^= 0xff
	round()
	round()
	round()
	round()

	var out [MACSize]byte
	binary.LittleEndian.PutUint64(out[:], v0^v1^v2^v3)
	return out
}
