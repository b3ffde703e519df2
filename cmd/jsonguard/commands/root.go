// Package commands implements the jsonguard CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version is the application version (set at build time).
	Version = "dev"
	// GitCommit is the git commit hash (set at build time).
	GitCommit = "unknown"
	// BuildDate is the build date (set at build time).
	BuildDate = "unknown"

	// Global flags.
	quiet bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "jsonguard",
	Short: "jsonguard - hardened JSON validation for untrusted payloads",
	Long: `jsonguard decides whether a byte stream is valid JSON and whether its
shape obeys configured structural limits, without building the document.

It protects services that would otherwise hand attacker-controlled input to
a full deserializer: pathological nesting depth, pathological fan-out,
oversized strings and keys, duplicate object keys.

Examples:
  jsonguard validate payload.json --max-depth 64
  cat payload.json | jsonguard validate --no-duplicate-keys
  jsonguard bench large.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-file validate output; exit status only")

	// Add subcommands.
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(benchCmd)
}
