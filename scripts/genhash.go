// Command genhash prints bcrypt hashes for seeding users directly in the store.
//
// Usage: go run ./scripts -cost 10 password1 password2
package main

import (
	"flag"
	"fmt"
	"os"

	"go-jobportal-backend/pkg/auth"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: genhash [-cost N] password...")
		os.Exit(2)
	}

	hasher := auth.NewBcryptHasher(*cost)
	for _, pass := range flag.Args() {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, hash)
	}
}
