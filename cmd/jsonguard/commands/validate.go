package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsonguard/jsonguard"
)

var (
	maxDepth         int
	maxStringLength  int
	maxArrayEntries  int
	maxObjectEntries int
	maxKeyLength     int
	noDuplicateKeys  bool
	steps            int
)

var validateCmd = &cobra.Command{
	Use:   "validate [FILE...]",
	Short: "Validate JSON files or stdin against structural limits",
	Long: `Validate one or more JSON files, or stdin when no file is given.

Each input must be a single JSON document. A negative limit flag leaves that
limit disabled.

Examples:
  jsonguard validate payload.json
  jsonguard validate a.json b.json --max-depth 64 --max-string-length 4096
  curl -s https://api.example.com/data | jsonguard validate --no-duplicate-keys
  jsonguard validate huge.json --steps 10000`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().IntVar(&maxDepth, "max-depth", -1, "Maximum nesting of containers")
	validateCmd.Flags().IntVar(&maxStringLength, "max-string-length", -1, "Maximum decoded byte length of any string value")
	validateCmd.Flags().IntVar(&maxArrayEntries, "max-array-entries", -1, "Maximum element count per array")
	validateCmd.Flags().IntVar(&maxObjectEntries, "max-object-entries", -1, "Maximum key-value pair count per object")
	validateCmd.Flags().IntVar(&maxKeyLength, "max-key-length", -1, "Maximum decoded byte length of any object key")
	validateCmd.Flags().BoolVar(&noDuplicateKeys, "no-duplicate-keys", false, "Reject objects that repeat a key")
	validateCmd.Flags().IntVar(&steps, "steps", 0, "Drive validation in chunks of N tokens (0 runs to completion)")
}

// limitOptions translates the flag set into validator options
func limitOptions() []jsonguard.Option {
	var opts []jsonguard.Option
	if maxDepth >= 0 {
		opts = append(opts, jsonguard.WithMaxDepth(maxDepth))
	}
	if maxStringLength >= 0 {
		opts = append(opts, jsonguard.WithMaxStringLength(maxStringLength))
	}
	if maxArrayEntries >= 0 {
		opts = append(opts, jsonguard.WithMaxArrayEntries(maxArrayEntries))
	}
	if maxObjectEntries >= 0 {
		opts = append(opts, jsonguard.WithMaxObjectEntries(maxObjectEntries))
	}
	if maxKeyLength >= 0 {
		opts = append(opts, jsonguard.WithMaxObjectEntryNameLength(maxKeyLength))
	}
	if noDuplicateKeys {
		opts = append(opts, jsonguard.WithDuplicateObjectEntryNames(false))
	}
	return opts
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts := limitOptions()

	if len(args) == 0 {
		if err := validateOne(cmd, "stdin", jsonguard.FromReader(bufio.NewReader(os.Stdin), opts...)); err != nil {
			return err
		}
		return nil
	}

	var failed bool
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		err = validateOne(cmd, path, jsonguard.FromReader(bufio.NewReader(f), opts...))
		_ = f.Close()
		if err != nil {
			failed = true
		}
	}
	if failed {
		return errors.New("validation failed")
	}
	return nil
}

func validateOne(cmd *cobra.Command, name string, v *jsonguard.Validator) error {
	var err error
	if steps > 0 {
		for {
			var finished bool
			finished, err = v.ValidateWithSteps(steps)
			if err != nil || finished {
				break
			}
		}
	} else {
		err = v.Validate()
	}

	if err != nil {
		if !quiet {
			cmd.PrintErrf("%s: invalid: %v\n", name, err)
		}
		return err
	}
	if !quiet {
		cmd.Printf("%s: valid\n", name)
	}
	return nil
}
