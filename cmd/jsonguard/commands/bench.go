package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsonguard/jsonguard"
)

var benchIterations int

var benchCmd = &cobra.Command{
	Use:   "bench FILE...",
	Short: "Compare validation throughput against encoding/json",
	Long: `Validate each file repeatedly with jsonguard and decode it repeatedly with
encoding/json, then report the throughput of both.

The comparison shows what skipping document materialisation buys when the
only question is whether a payload is acceptable.

Examples:
  jsonguard bench large.json
  jsonguard bench twitter.json canada.json --iterations 500`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 200, "Iterations per file")
}

func runBench(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		guardElapsed, err := benchValidator(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		stdElapsed, err := benchEncodingJSON(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		size := float64(len(data)) * float64(benchIterations) / (1 << 20)
		cmd.Printf("%s (%d bytes, %d iterations)\n", path, len(data), benchIterations)
		cmd.Printf("  jsonguard:     %8.2f MB/s (%v)\n", size/guardElapsed.Seconds(), guardElapsed)
		cmd.Printf("  encoding/json: %8.2f MB/s (%v)\n", size/stdElapsed.Seconds(), stdElapsed)
	}
	return nil
}

func benchValidator(data []byte) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < benchIterations; i++ {
		if err := jsonguard.FromBytes(data).Validate(); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}

func benchEncodingJSON(data []byte) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < benchIterations; i++ {
		var v interface{}
		if err := json.Unmarshal(data, &v); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}
