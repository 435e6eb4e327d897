// Package main is the entry point for the NC News API.
//
// MAIN PACKAGE IN GO:
// The main package should be kept minimal. Everything it does is delegated
// to the commands package, which parses flags and starts the right command.
//
// WHY cmd/server/?
// The cmd/ directory is a Go convention for executable entry points.
// A project might have multiple executables (e.g., cmd/server, cmd/migrate).
// Each gets its own directory with its own main.go.
package main

import "github.com/sakif/nc-news/cmd/server/commands"

func main() {
	commands.Execute()
}
