// Package main provides the jsonguard command-line interface.
//
// jsonguard validates JSON payloads against structural limits without
// materialising them.
//
// Usage:
//
//	jsonguard [command] [flags]
//
// Available Commands:
//
//	validate    Validate JSON files or stdin against structural limits
//	bench       Compare validation throughput against encoding/json
//	version     Print version information
//
// Use "jsonguard [command] --help" for more information about a command.
package main

import (
	"os"

	"github.com/jsonguard/jsonguard/cmd/jsonguard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
