// Package crypto implements the two wire-level primitives the frame codec
// depends on: a ChaCha20 block function with the nonstandard word layout
// used by the Boreal wire format, and SipHash-2-4. Neither is delegated to
// golang.org/x/crypto or any hashing library — the wire format requires the
// exact state layout and finalization described in the protocol spec, for
// which no library in the ecosystem exposes matching primitives. Neither
// function is constant-time; side-channel hardening is out of scope.
package crypto
