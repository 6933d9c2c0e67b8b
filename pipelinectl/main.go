package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFormat string
	strict       bool
)

var rootCmd = &cobra.Command{
	Use:   "pipelinectl",
	Short: "Validate editor pipelines from the command line",
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check pipelines for cycles and report their status",
	Long: `Reads one or more pipeline files and prints the validation message for each.

Files may be JSON or YAML with top-level "nodes" and "edges" keys. Use "-" to
read from standard input.

Examples:
  pipelinectl validate flow.json
  pipelinectl validate --output json a.yaml b.yaml
  cat flow.json | pipelinectl validate --strict -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format: text or json")
	validateCmd.Flags().BoolVar(&strict, "strict", false, "exit with an error if any pipeline contains a cycle")
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
