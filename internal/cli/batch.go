package cli

import (
	"os"

	"github.com/hightemp/ccconv/internal/batch"
	"github.com/hightemp/ccconv/internal/config"
	"github.com/spf13/cobra"
)

var batchMode string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve one code or name per line from stdin",
	Long: `Reads queries from stdin, one per line, and prints one result per query.

Examples:
  cat codes.txt | ccconv batch                  # code -> name
  cat names.txt | ccconv batch --mode code      # name -> code
  cat codes.txt | ccconv batch --format json --concurrency 8`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchMode, "mode", string(batch.ModeName), "lookup direction: name (code to name) or code (name to code)")
	batchCmd.Flags().Int("concurrency", config.DefaultConcurrency, "parallel lookups")
	bindFlag(config.KeyConcurrency, batchCmd.Flags().Lookup("concurrency"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	mode, err := batch.ParseMode(batchMode)
	if err != nil {
		exitWithCode(ExitInvalidInput, err.Error())
		return nil
	}

	// Check if stdin is a terminal
	if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		return cmd.Help()
	}

	format := outputFormat()
	idx := loadTable()
	processor := batch.NewProcessor(idx, mode, cfg.Concurrency)

	if cfg.Concurrency > 1 {
		return processor.ProcessInputConcurrent(cmd.Context(), os.Stdin, os.Stdout, format)
	}
	return processor.ProcessInput(cmd.Context(), os.Stdin, os.Stdout, format)
}
