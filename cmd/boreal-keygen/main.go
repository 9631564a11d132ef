// Command boreal-keygen generates a fresh MAC key and cipher key pair
// for a host/brainstem session and writes them as hex files, prompting
// for confirmation before overwriting existing key material.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/crypto"
	"github.com/dawsonblock/BOREAL-SILICON-X1/pkg/keyio"
)

func main() {
	macOut := flag.String("mac-out", "mac.hex", "path to write the MAC key")
	cipherOut := flag.String("cipher-out", "cipher.hex", "path to write the cipher key")
	force := flag.Bool("force", false, "overwrite existing key files without confirmation")
	flag.Parse()

	macKey := make([]byte, 16)
	cipherKey := make([]byte, crypto.KeySize)
	if _, err := rand.Read(macKey); err != nil {
		log.Fatalf("generate mac key failed: %v", err)
	}
	if _, err := rand.Read(cipherKey); err != nil {
		log.Fatalf("generate cipher key failed: %v", err)
	}

	if !*force {
		if exists(*macOut) || exists(*cipherOut) {
			if !confirmOverwrite() {
				fmt.Println("aborted, no files written")
				os.Exit(1)
			}
		}
	}

	if err := keyio.WriteFixed(*macOut, macKey, true); err != nil {
		log.Fatalf("write mac key failed: %v", err)
	}
	if err := keyio.WriteFixed(*cipherOut, cipherKey, true); err != nil {
		log.Fatalf("write cipher key failed: %v", err)
	}

	fmt.Printf("wrote %s and %s\n", *macOut, *cipherOut)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// confirmOverwrite reads a single y/n keystroke from stdin without
// echoing it, the way keyswap's menu reader drives raw terminal input.
func confirmOverwrite() bool {
	fmt.Print("key file(s) already exist, overwrite? [y/N] ")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Not a terminal (e.g. piped input); fall back to refusing.
		return false
	}
	defer term.Restore(fd, oldState)

	buf := make([]byte, 1)
	n, err := os.Stdin.Read(buf)
	fmt.Print("\r\n")
	if err != nil || n == 0 {
		return false
	}
	return buf[0] == 'y' || buf[0] == 'Y'
}
