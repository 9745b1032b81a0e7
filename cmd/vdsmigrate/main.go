// Package main is the entry point for the vdsmigrate CLI.
//
// vdsmigrate is a command-line tool that migrates vSphere hosts from
// per-host standard virtual switches to a single distributed virtual
// switch, moving VM, management, and uplink traffic in an order that
// never severs connectivity.
//
// Commands: init, migrate, check, version, completion.
//
// For detailed usage information, run:
//
//	vdsmigrate --help
package main

import (
	"fmt"
	"os"

	"github.com/virtstack/vdsmigrate/cmd/vdsmigrate/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
