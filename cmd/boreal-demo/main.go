// Command boreal-demo wires a host and a brainstem together in process
// over a loopback transport, so the full link can be exercised without
// real hardware or a two-machine setup. It is a thin harness, not part
// of the host/brainstem core.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/brainstem"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/frame"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/host"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/intent"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/motor"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/policy"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/transport"
)

const demoPolicy = `IF intent == 2 CONF >= 20000
ACT 2 50
DEFAULT DENY
`

func main() {
	duration := flag.Duration("duration", 2*time.Second, "how long to run the demo")
	rateHz := flag.Int("rate-hz", 50, "host send rate in Hz")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	bc, err := policy.Compile(strings.NewReader(demoPolicy))
	if err != nil {
		log.Fatalf("compile demo policy failed: %v", err)
	}

	var keys frame.Keys
	for i := range keys.MACKey {
		keys.MACKey[i] = byte(i + 1)
	}
	for i := range keys.CipherKey {
		keys.CipherKey[i] = byte(i + 1)
	}

	hostPort, brainPort := transport.Pipe()
	defer hostPort.Close()
	defer brainPort.Close()

	driver := motor.NewSimDriver()
	state := brainstem.New(keys, bc, driver)
	stop := state.Run(brainPort, func(err error) {
		slog.Warn("demo brainstem rejected frame", "error", err)
	})
	defer stop()

	session := host.NewSession(keys, 1, host.NewSystemClock(time.Now()))
	src := host.NewCannedSource(
		intent.Packet{IntentID: intent.IDStop},
		intent.Packet{IntentID: intent.IDMove, ConfQ15: 30000, Aux: intent.NewAuxFromSlice([]int16{50})},
	)
	stopSend := host.SendLoop(session, src, hostPort, time.Second/time.Duration(*rateHz))
	defer stopSend()

	slog.Info("demo running", "duration", duration.String())
	time.Sleep(*duration)

	slog.Info("demo finished", "motor0_target", state.Motors.Target(0), "motor0_velocity", driver.ReadVelocity(0))
}
