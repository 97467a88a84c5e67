// Package main provides the entry point for the atmrecon CLI tool.
package main

import (
	"github.com/bankops/atmrecon/cmd/atmrecon/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
