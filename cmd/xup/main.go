// Package main is the entry point for the xup command.
package main

import (
	"context"
	"os"

	"github.com/jsamuelsen/xup/internal/cli"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/xup
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	os.Exit(cli.Execute(context.Background(), cli.Options{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}, os.Args[1:]))
}
