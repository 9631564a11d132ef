// Package brainstem implements the brainstem-side owned state: the
// single-writer record that ingests frames, runs the decision VM and
// safety gate, drives the motor controller, and services the watchdog.
package brainstem

import (
	"time"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/frame"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/gate"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/motor"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/transport"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/vm"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/watchdog"
)

// ControlHz is the fixed control-loop tick rate, matching pkg/motor.
const ControlHz = motor.ControlHz

// State is the brainstem's single owned record. Every field here is
// touched by exactly one goroutine (the control-tick loop started by
// Run), which also calls IngestFrame; the separate reader goroutine only
// ever hands raw frame bytes across the channel Run listens on.
type State struct {
	Keys    frame.Keys
	Program *vm.Program
	Gate    *gate.Gate
	Motors  *motor.Controller
	Watch   *watchdog.Watchdog
	Driver  motor.Driver

	lastSeq uint32
}

// New builds a State ready to run, in safe state, with a fresh motor
// controller.
func New(keys frame.Keys, bytecode []byte, driver motor.Driver) *State {
	return &State{
		Keys:    keys,
		Program: vm.NewProgram(bytecode),
		Gate:    gate.New(),
		Motors:  &motor.Controller{},
		Watch:   watchdog.New(),
		Driver:  driver,
	}
}

// decodeFrame validates and decrypts raw into an intent packet, updating
// lastSeq only after a fully successful decode, per the protocol's
// anti-replay commit ordering, and returns the action the policy program
// commits for that packet.
func (s *State) decodeFrame(raw []byte) (vm.Action, error) {
	p, h, err := frame.Decode(s.Keys, s.lastSeq, raw)
	if err != nil {
		return vm.Action{}, err
	}
	s.lastSeq = h.Seq
	act := s.Program.Eval(p)
	return act, nil
}

// IngestFrame decodes raw, evaluates the policy program, and — if the
// gate admits the result — applies it to the motor controller and pets
// the watchdog. Errors from a bad frame (replay, MAC failure, malformed
// header) are returned for the caller to log; they never panic and never
// corrupt lastSeq, since decodeFrame only commits it after success.
func (s *State) IngestFrame(raw []byte) error {
	act, err := s.decodeFrame(raw)
	if err != nil {
		return err
	}
	if s.Gate.Admit(act) {
		s.Motors.Apply(act)
		s.Watch.Pet()
	}
	return nil
}

// ControlTick runs one PID step per motor and writes the resulting PWM
// to the driver. It is called once per control cycle regardless of
// whether a frame arrived this cycle.
func (s *State) ControlTick() {
	for id := 0; id < 2; id++ {
		v := s.Driver.ReadVelocity(id)
		pwm := s.Motors.Tick(id, v)
		s.Driver.SetPWM(id, pwm)
	}
}

// WatchdogTick advances the watchdog by one cycle and, if it trips,
// resets motor targets and integral state so the actuators go quiet.
func (s *State) WatchdogTick() {
	if s.Watch.Tick() {
		s.Motors.Reset()
	}
}

// Run drives the brainstem loop: a 50 Hz ticker goroutine owns all
// State fields, performing one ControlTick and one WatchdogTick per
// cycle and draining any frame handed to it by the reader goroutine
// between ticks. A separate goroutine blocks on port reads and feeds
// decoded raw frames over an unbuffered channel, preserving single-
// writer discipline on State. Run blocks until stop is called.
func (s *State) Run(port transport.Port, onError func(error)) (stop func()) {
	frames := make(chan []byte)
	done := make(chan struct{})

	go func() {
		reader := transport.NewFrameReader(port)
		for {
			raw, err := reader.ReadFrame()
			if err != nil {
				return
			}
			select {
			case frames <- raw:
			case <-done:
				return
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(time.Second / ControlHz)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case raw := <-frames:
				if err := s.IngestFrame(raw); err != nil && onError != nil {
					onError(err)
				}
			case <-ticker.C:
				s.ControlTick()
				s.WatchdogTick()
			}
		}
	}()

	return func() { close(done) }
}
