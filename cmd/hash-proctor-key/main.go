package main

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// hash-proctor-key generates the bcrypt hash for PROCTOR_KEY_HASH.
func main() {
	fmt.Print("Proctor key (hidden): ")
	key, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read key: %v\n", err)
		os.Exit(1)
	}
	if len(key) == 0 {
		fmt.Fprintln(os.Stderr, "key must not be empty")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword(key, bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nPROCTOR_KEY_HASH=" + string(hash))
}
