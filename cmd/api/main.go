package main

import (
	"os"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
