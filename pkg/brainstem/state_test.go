package brainstem

import (
	"strings"
	"testing"
	"time"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/frame"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/host"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/intent"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/motor"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/policy"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/transport"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/vm"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/watchdog"
)

func testKeys() frame.Keys {
	return frame.Keys{
		MACKey:    [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		CipherKey: [32]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32},
	}
}

func mustCompile(t *testing.T, src string) []byte {
	t.Helper()
	bc, err := policy.Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return bc
}

func TestIngestFrameAppliesAdmittedAction(t *testing.T) {
	keys := testKeys()
	bc := mustCompile(t, "IF intent == 2 CONF >= 0\nACT 2 50\nDEFAULT DENY\n")
	driver := motor.NewSimDriver()
	s := New(keys, bc, driver)

	raw := frame.Encode(keys, 1, 1, 0, intent.Packet{IntentID: 2, ConfQ15: 1000})
	if err := s.IngestFrame(raw[:]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Motors.Target(0) != 0.5 {
		t.Fatalf("expected target 0.5 after admitted MOVE, got %v", s.Motors.Target(0))
	}
	if s.Watch.SafeState() {
		t.Fatalf("expected watchdog to be petted out of safe state")
	}
}

func TestIngestFrameRejectsReplay(t *testing.T) {
	keys := testKeys()
	bc := mustCompile(t, "DEFAULT DENY\n")
	s := New(keys, bc, motor.NewSimDriver())

	raw := frame.Encode(keys, 1, 5, 0, intent.Packet{})
	if err := s.IngestFrame(raw[:]); err != nil {
		t.Fatalf("unexpected error on first frame: %v", err)
	}
	if err := s.IngestFrame(raw[:]); err == nil {
		t.Fatalf("expected replay rejection on repeated seq")
	}
}

func TestWatchdogTickResetsMotorsOnTrip(t *testing.T) {
	s := New(testKeys(), mustCompile(t, "DEFAULT DENY\n"), motor.NewSimDriver())
	s.Watch.Pet()
	s.Motors.Apply(vm.Action{ActID: 2, Param: 50})
	s.Motors.Tick(0, 0) // nonzero integral accrual path

	for i := 0; i < watchdog.MaxCycles; i++ {
		s.WatchdogTick()
	}
	if !s.Watch.SafeState() {
		t.Fatalf("expected watchdog to have tripped")
	}
	if s.Motors.Target(0) != 0 {
		t.Fatalf("expected motor targets reset after watchdog trip")
	}
}

func TestControlTickDrivesDriver(t *testing.T) {
	bc := mustCompile(t, "IF intent == 2 CONF >= 0\nACT 2 50\nDEFAULT DENY\n")
	driver := motor.NewSimDriver()
	s := New(testKeys(), bc, driver)
	s.Motors.Apply(s.Program.Eval(intent.Packet{IntentID: 2, ConfQ15: 1}))

	for i := 0; i < 500; i++ {
		s.ControlTick()
	}
	v := driver.ReadVelocity(0)
	if v < 0.3 {
		t.Fatalf("expected driver velocity to approach target, got %v", v)
	}
}

func TestRunEndToEndOverLoopback(t *testing.T) {
	keys := testKeys()
	bc := mustCompile(t, "IF intent == 2 CONF >= 0\nACT 2 50\nDEFAULT DENY\n")

	hostPort, brainPort := transport.Pipe()
	defer hostPort.Close()
	defer brainPort.Close()

	s := New(keys, bc, motor.NewSimDriver())
	var lastErr error
	stop := s.Run(brainPort, func(err error) { lastErr = err })
	defer stop()

	session := host.NewSession(keys, 1, fixedClock(0))
	f := session.BuildFrame(intent.Packet{IntentID: 2, ConfQ15: 1000})

	done := make(chan struct{})
	go func() {
		hostPort.Write(f[:])
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timed out writing frame to loopback")
	}

	time.Sleep(50 * time.Millisecond)
	if lastErr != nil {
		t.Fatalf("unexpected ingest error: %v", lastErr)
	}
	if s.Motors.Target(0) != 0.5 {
		t.Fatalf("expected target 0.5 after end-to-end frame, got %v", s.Motors.Target(0))
	}
}

type fixedClock uint32

func (c fixedClock) NowMS() uint32 { return uint32(c) }
