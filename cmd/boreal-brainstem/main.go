// Command boreal-brainstem runs the brainstem side of the link: it loads
// keys and a compiled policy program, then ingests frames from a
// transport while driving the motor controller and watchdog at a fixed
// control rate.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/dawsonblock/BOREAL-SILICON-X1/internal/brainstemconfig"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/brainstem"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/frame"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/keyio"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/motor"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/policy"
)

func main() {
	configPath := flag.String("config", "brainstem.yaml", "path to brainstem config file")
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

	cfg, err := brainstemconfig.Load(*configPath)
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

	bytecode, err := os.ReadFile(cfg.Policy.BytecodeFile)
	if err != nil {
		log.Fatalf("read policy bytecode failed: %v", err)
	}
	if err := policy.VerifyManifest(cfg.Policy.ManifestFile, bytecode); err != nil {
		log.Fatalf("policy manifest verification failed: %v", err)
	}

	port, err := openDevice(cfg.Link.Device)
	if err != nil {
		log.Fatalf("open link failed: %v", err)
	}
	defer port.Close()

	state := brainstem.New(keys, bytecode, motor.NewSimDriver())
	slog.Info("boreal-brainstem starting", "device", cfg.Link.Device)
	stop := state.Run(port, func(err error) {
		slog.Warn("frame ingest rejected", "error", err)
	})
	defer stop()

	select {}
}
