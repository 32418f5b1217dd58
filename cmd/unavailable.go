package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Operations the classic command line accepted but the server admin API
// never backed.
var (
	listTypesCmd = &cobra.Command{
		Use:    "listtypes",
		Short:  "List service types (unavailable)",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "\nThe Listtypes command is unavailable.")
		},
	}

	statsCmd = &cobra.Command{
		Use:    "stats",
		Short:  "Show service statistics (unavailable)",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "\nThe stats command is unavailable.")
		},
	}
)

func init() {
	rootCmd.AddCommand(listTypesCmd, statsCmd)
}
