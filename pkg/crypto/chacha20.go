package crypto

import "encoding/binary"

// KeySize is the width of a ChaCha20 key in bytes (256 bits, eight u32 words).
const KeySize = 32

// BlockSize is the width of one ChaCha20 keystream block in bytes.
const BlockSize = 64

var sigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

func rotl32(v uint32, c uint) uint32 {
	return (v << c) | (v >> (32 - c))
}

func quarterRound(x *[16]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] ^= x[a]
	x[d] = rotl32(x[d], 16)
	x[c] += x[d]
	x[b] ^= x[c]
	x[b] = rotl32(x[b], 12)
	x[a] += x[b]
	x[d] ^= x[a]
	x[d] = rotl32(x[d], 8)
	x[c] += x[d]
	x[b] ^= x[c]
	x[b] = rotl32(x[b], 7)
}

// Block computes one 64-byte ChaCha20 keystream block.
//
// State layout: four constant words, eight key words, a block counter word,
// and two nonce words occupying state words 13 and 14 — the 64-bit nonce
// used throughout this protocol, not the RFC 7539 96-bit nonce. Word 15 is
// always zero.
func Block(key *[8]uint32, nonce uint64, counter uint32) [BlockSize]byte {
	var x [16]uint32
	x[0], x[1], x[2], x[3] = sigma[0], sigma[1], sigma[2], sigma[3]
	for i := 0; i < 8; i++ {
		x[4+i] = key[i]
	}
	x[12] = counter
	x[13] = uint32(nonce)
	x[14] = uint32(nonce >> 32)
	x[15] = 0

	initial := x
	for i := 0; i < 10; i++ {
		quarterRound(&x, 0, 4, 8, 12)
		quarterRound(&x, 1, 5, 9, 13)
		quarterRound(&x, 2, 6, 10, 14)
		quarterRound(&x, 3, 7, 11, 15)
		quarterRound(&x, 0, 5, 10, 15)
		quarterRound(&x, 1, 6, 11, 12)
		quarterRound(&x, 2, 7, 8, 13)
		quarterRound(&x, 3, 4, 9, 14)
	}
	for i := range x {
		x[i] += initial[i]
	}

	var out [BlockSize]byte
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], x[i])
	}
	return out
}

// KeyWords unpacks a 32-byte little-endian key into eight u32 words.
func KeyWords(key [KeySize]byte) [8]uint32 {
	var words [8]uint32
	for i := 0; i < 8; i++ {
		words[i] = binary.LittleEndian.Uint32(key[i*4 : i*4+4])
	}
	return words
}

// XORStream encrypts or decrypts buf against the keystream generated from
// (key, nonce, counter), returning the result in a new slice; buf itself
// is not modified. Encryption and decryption are the
// same operation: XORStream(XORStream(p)) == p for a fixed (key, nonce,
// counter). The caller must never reuse a (nonce, counter) pair under the
// same key.
func XORStream(key [KeySize]byte, nonce uint64, counter uint32, buf []byte) []byte {
	words := KeyWords(key)
	out := make([]byte, len(buf))
	for offset := 0; offset < len(buf); offset += BlockSize {
		block := Block(&words, nonce, counter)
		counter++
		end := offset + BlockSize
		if end > len(buf) {
			end = len(buf)
		}
		for i := offset; i < end; i++ {
			out[i] = buf[i] ^ block[i-offset]
		}
	}
	return out
}
