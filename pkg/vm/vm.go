// Package vm implements the decision virtual machine: a constant-step
// interpreter that evaluates compiled policy bytecode against a decoded
// intent packet and returns an admissible action. The VM trusts the
// bytecode it is given — physical-bound checking happened at compile time.
package vm

import (
	"encoding/binary"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/intent"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/policy"
)

// MaxSteps caps evaluation at 32 opcodes as an anti-runaway guard.
// Exceeding the cap yields the null action.
const MaxSteps = 32

// Action is the VM's fixed-width output record.
type Action struct {
	ActID uint8
	Param int16
}

// IsNull reports whether a is the null action (ActID == 0).
func (a Action) IsNull() bool {
	return a.ActID == 0
}

// Program is a compiled policy bytecode image paired with the persistent
// PrevActID state the OP_REQUIRE_PREV / OP_SET / OP_DENY opcodes read and
// write across evaluations.
type Program struct {
	Bytecode  []byte
	PrevActID uint8
}

// NewProgram wraps a compiled bytecode image for evaluation. PrevActID
// starts at 0, matching brainstem init.
func NewProgram(bytecode []byte) *Program {
	return &Program{Bytecode: bytecode}
}

// Eval runs the program against p and returns the committed action. Eval
// is deterministic and side-effect-free except for updating PrevActID on a
// committed OP_SET or OP_DENY. Evaluation halts on the first committed
// action, the step cap, or OP_END.
func (prog *Program) Eval(p intent.Packet) Action {
	pc := 0
	steps := 0
	condFailed := false
	bc := prog.Bytecode

	for pc < len(bc) && steps < MaxSteps {
		op := bc[pc]
		pc++

		switch op {
		case policy.OpIf:
			if pc+4 > len(bc) {
				return Action{}
			}
			id := binary.LittleEndian.Uint16(bc[pc : pc+2])
			minConf := binary.LittleEndian.Uint16(bc[pc+2 : pc+4])
			pc += 4
			condFailed = p.IntentID != id || p.ConfQ15 < minConf

		case policy.OpRequirePrev:
			if pc+1 > len(bc) {
				return Action{}
			}
			reqAct := bc[pc]
			pc++
			if prog.PrevActID != reqAct && prog.PrevActID != 0 {
				condFailed = true
			}

		case policy.OpSet:
			if pc+3 > len(bc) {
				return Action{}
			}
			actID := bc[pc]
			param := int16(binary.LittleEndian.Uint16(bc[pc+1 : pc+3]))
			pc += 3
			if !condFailed {
				prog.PrevActID = actID
				return Action{ActID: actID, Param: param}
			}

		case policy.OpDeny:
			prog.PrevActID = 0
			return Action{}

		case policy.OpEnd:
			return Action{}

		default:
			return Action{}
		}

		steps++
	}

	return Action{}
}
