// Package motor implements the two-motor PID controller and the
// act_id-to-target translation the decision VM's committed action drives.
package motor

import "github.com/dawsonblock/BOREAL-SILICON-X1/pkg/vm"

// Fixed control-loop gains and limits, per the protocol spec.
const (
	ControlHz   = 50
	Kp          = 1.0
	Ki          = 0.1
	Kd          = 0.05
	MaxIntegral = 100.0
	MaxPWM      = 1000
	MinPWM      = -1000
)

// motor is one PID channel's owned state.
type motor struct {
	velocity  float64
	target    float64
	integral  float64
	prevError float64
}

// Controller owns both motor channels' PID state. The zero value is ready
// to use: both channels start at rest with zero integral.
type Controller struct {
	motors [2]motor
}

// Apply translates a committed action into per-motor targets, per the
// act_id table in the protocol spec. It does not itself run a PID tick.
func (c *Controller) Apply(act vm.Action) {
	switch act.ActID {
	case 1: // STOP
		c.motors[0].target = 0
		c.motors[1].target = 0
	case 2: // MOVE
		v := float64(act.Param) / 100.0
		c.motors[0].target = v
		c.motors[1].target = v
	case 3: // TURN
		v := float64(act.Param) / 100.0
		c.motors[0].target = v
		c.motors[1].target = -v
	}
}

// Tick runs one PID step for motor id against its current velocity reading
// and returns the clamped PWM output. The integral term is clamped to
// ±MaxIntegral before computing the control law.
func (c *Controller) Tick(id int, velocity float64) int32 {
	m := &c.motors[id]
	m.velocity = velocity

	e := m.target - m.velocity
	m.integral += e / ControlHz
	if m.integral > MaxIntegral {
		m.integral = MaxIntegral
	}
	if m.integral < -MaxIntegral {
		m.integral = -MaxIntegral
	}
	d := (e - m.prevError) * ControlHz
	m.prevError = e

	u := Kp*e + Ki*m.integral + Kd*d
	pwm := clamp(u, MinPWM, MaxPWM)
	return int32(pwm)
}

// Target returns motor id's current target velocity, for diagnostics.
func (c *Controller) Target(id int) float64 {
	return c.motors[id].target
}

// Reset zeroes both motors' targets and integral state, leaving the last
// observed velocity untouched. Called when entering safe state.
func (c *Controller) Reset() {
	for i := range c.motors {
		c.motors[i].target = 0
		c.motors[i].integral = 0
		c.motors[i].prevError = 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
