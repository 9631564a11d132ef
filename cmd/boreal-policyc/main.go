// Command boreal-policyc compiles a policy DSL source file into bytecode
// and writes a sha256 manifest alongside it.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/policy"
)

func main() {
	srcPath := flag.String("src", "", "path to policy DSL source file")
	outPath := flag.String("out", "policy.bin", "path to write compiled bytecode")
	manifestPath := flag.String("manifest", "", "path to write sha256 manifest (defaults to <out>.sha256)")
	flag.Parse()

	if *srcPath == "" {
		log.Fatalf("-src is required")
	}
	if *manifestPath == "" {
		*manifestPath = *outPath + ".sha256"
	}

	f, err := os.Open(*srcPath)
	if err != nil {
		log.Fatalf("open source failed: %v", err)
	}
	defer f.Close()

	bc, err := policy.Compile(f)
	if err != nil {
		log.Fatalf("compile failed: %v", err)
	}

	if err := os.WriteFile(*outPath, bc, 0o644); err != nil {
		log.Fatalf("write bytecode failed: %v", err)
	}
	if err := policy.WriteManifest(*manifestPath, bc); err != nil {
		log.Fatalf("write manifest failed: %v", err)
	}

	log.Printf("compiled %s -> %s (%d bytes), manifest %s", *srcPath, *outPath, len(bc), *manifestPath)
}
