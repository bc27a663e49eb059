package main

import (
	"log"
	"os"

	"agentsx/internal/cli"
)

// Thin wrapper kept so `go install agentsx` works; new builds target
// cmd/agentsx.
func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		log.Fatalf("error: %v", err)
	}
}
