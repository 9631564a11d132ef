// Package gate implements the post-VM safety gate: admission checks the
// decision VM cannot express on its own, such as the MOVE rate limit.
package gate

import (
	"time"

	"github.com/joeycumines/go-catrate"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/vm"
)

// ControlHz is the control loop rate and the MOVE admission cap.
const ControlHz = 50

// moveActID is the actuator kind code rate-limited by this gate.
const moveActID = uint8(2)

// Gate is the post-VM admission filter. The zero value is not usable;
// construct with New.
type Gate struct {
	limiter *catrate.Limiter
}

// New builds a Gate that rate-limits MOVE (act_id=2) admissions to
// ControlHz per second, tracked per act_id as the spec's contract requires.
// STOP and TURN are never rate-limited.
func New() *Gate {
	return &Gate{
		limiter: catrate.NewLimiter(map[time.Duration]int{
			time.Second: ControlHz,
		}),
	}
}

// Admit reports whether act should be actuated. The null action is always
// rejected. MOVE is subject to the configured rate limit; STOP and TURN
// pass through unconditionally. An admitted action pets the watchdog — the
// caller is responsible for that, Admit itself has no side effects beyond
// the rate limiter's own bookkeeping.
func (g *Gate) Admit(act vm.Action) bool {
	if act.IsNull() {
		return false
	}
	if act.ActID != moveActID {
		return true
	}
	_, ok := g.limiter.Allow(moveActID)
	return ok
}
