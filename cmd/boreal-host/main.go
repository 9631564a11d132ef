// Command boreal-host drives the host side of the link: it loads a
// session's keys and model id, pulls intents from a canned source, and
// writes framed, encrypted, MAC'd frames to a transport at a fixed rate.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dawsonblock/BOREAL-SILICON-X1/internal/hostconfig"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/frame"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/host"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/intent"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/keyio"
)

func main() {
	configPath := flag.String("config", "host.yaml", "path to host config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if *logFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
	}

	cfg, err := hostconfig.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	macKey, err := keyio.LoadFixed(cfg.Keys.MACKeyHexFile, 16)
	if err != nil {
		log.Fatalf("mac key load failed: %v", err)
	}
	cipherKey, err := keyio.LoadFixed(cfg.Keys.CipherKeyHexFile, 32)
	if err != nil {
		log.Fatalf("cipher key load failed: %v", err)
	}

	var keys frame.Keys
	copy(keys.MACKey[:], macKey)
	copy(keys.CipherKey[:], cipherKey)

	port, err := openDevice(cfg.Link.Device)
	if err != nil {
		log.Fatalf("open link failed: %v", err)
	}
	defer port.Close()

	clock := host.NewSystemClock(timeNow())
	session := host.NewSession(keys, uint16(*cfg.Model.ID), clock)
	src := host.NewCannedSource(
		intent.Packet{IntentID: intent.IDStop},
		intent.Packet{IntentID: intent.IDMove, ConfQ15: 30000, Aux: intent.NewAuxFromSlice([]int16{40})},
		intent.Packet{IntentID: intent.IDTurn, ConfQ15: 30000, Aux: intent.NewAuxFromSlice([]int16{20})},
	)

	rate := time.Second / time.Duration(*cfg.Link.RateHz)
	slog.Info("boreal-host starting", "device", cfg.Link.Device, "rate_hz", *cfg.Link.RateHz, "model_id", *cfg.Model.ID)
	stop := host.SendLoop(session, src, port, rate)
	defer stop()

	select {}
}

func timeNow() time.Time {
	return time.Now()
}
