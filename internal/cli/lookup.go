package cli

import (
	"fmt"
	"strings"

	"github.com/hightemp/ccconv/internal/batch"
	"github.com/hightemp/ccconv/internal/countries"
	"github.com/hightemp/ccconv/internal/output"
	"github.com/spf13/cobra"
)

var fallback bool

var nameCmd = &cobra.Command{
	Use:   "name <code>",
	Short: "Print the country name for an alpha-3 code",
	Long: `Prints the country name for an ISO-3166 alpha-3 code. The code is
matched case-insensitively.

Examples:
  ccconv name CAN            # Canada
  ccconv name --fallback xkx # XKX when the code is unknown`,
	Args: cobra.ExactArgs(1),
	RunE: runName,
}

var codeCmd = &cobra.Command{
	Use:   "code <name>",
	Short: "Print the alpha-3 code for a country name",
	Long: `Prints the lowercase ISO-3166 alpha-3 code for a country name. The
name is matched case-insensitively; multiple arguments are joined with spaces.

Examples:
  ccconv code canada                # can
  ccconv code United States of America`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCode,
}

func init() {
	nameCmd.Flags().BoolVar(&fallback, "fallback", false, "print the upper-cased code instead of failing when it is unknown")
}

func runName(cmd *cobra.Command, args []string) error {
	idx := loadTable()

	if fallback && outputFormat() == output.FormatText {
		fmt.Println(countries.Label(idx, args[0]))
		return nil
	}
	return lookupSingle(batch.Resolve(idx, batch.ModeName, args[0]), func(r *output.LookupResult) string {
		return r.Name
	})
}

func runCode(cmd *cobra.Command, args []string) error {
	idx := loadTable()
	query := strings.Join(args, " ")
	return lookupSingle(batch.Resolve(idx, batch.ModeCode, query), func(r *output.LookupResult) string {
		return r.Code
	})
}

// lookupSingle prints result. Text output is the bare value; JSON and YAML
// carry the whole result. A miss exits with ExitNotFound.
func lookupSingle(result *output.LookupResult, value func(*output.LookupResult) string) error {
	if outputFormat() == output.FormatText {
		if !result.Found {
			exitWithCode(ExitNotFound, fmt.Sprintf("No match for %q", result.Query))
			return nil
		}
		fmt.Println(value(result))
		return nil
	}

	if err := render(result); err != nil {
		return err
	}
	if !result.Found {
		exitWithCode(ExitNotFound, fmt.Sprintf("No match for %q", result.Query))
	}
	return nil
}
