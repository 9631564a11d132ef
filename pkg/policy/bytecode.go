// Package policy compiles the line-oriented safety DSL into the compact
// bytecode executed by pkg/vm. Compilation is the only place physical
// bounds are checked; the VM trusts the bytecode it is given.
package policy

// Opcode bytes.
const (
	OpIf          byte = 0x01
	OpSet         byte = 0x02
	OpDeny        byte = 0x03
	OpRequirePrev byte = 0x04
	OpEnd         byte = 0xFF
)

// Bound is an inclusive [Min, Max] range for an actuator parameter.
type Bound struct {
	Min, Max int16
}

// Bounds is the physical-bound table: act_id=1 (STOP) in [0,1], act_id=2
// (MOVE) in [-50,50], act_id=3 (TURN) in [-30,30].
var Bounds = map[byte]Bound{
	1: {Min: 0, Max: 1},
	2: {Min: -50, Max: 50},
	3: {Min: -30, Max: 30},
}

// InBounds reports whether param is within the physical bound for actID.
// An unknown actID is never in bounds.
func InBounds(actID byte, param int16) bool {
	b, ok := Bounds[actID]
	if !ok {
		return false
	}
	return param >= b.Min && param <= b.Max
}
