package cli

import (
	"fmt"
	"strings"

	"github.com/hightemp/ccconv/internal/output"
	"github.com/spf13/cobra"
)

var codesOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every code and country name in the table",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where the country table was loaded from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return render(output.NewTableInfo(loadTable()))
	},
}

func init() {
	listCmd.Flags().BoolVar(&codesOnly, "codes", false, "print codes only, one per line")
}

func runList(cmd *cobra.Command, args []string) error {
	idx := loadTable()

	if codesOnly && outputFormat() == output.FormatText {
		fmt.Println(strings.Join(idx.Codes(), "\n"))
		return nil
	}
	return render(&output.EntryList{Entries: idx.Entries()})
}
