// Filters commands for the sellerdesk CLI. These manage the persisted
// leads view state.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Manage the persisted leads view state",
}

var filtersShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the leads view state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "filters show", err)
		}
		defer c.Close()

		filters := c.LeadFilters().Read()
		if flagJSON {
			return printJSON(filters)
		}
		status := filters.StatusFilter
		if status == "" {
			status = "(all)"
		}
		sortBy := filters.SortBy
		if sortBy == "" {
			sortBy = "(none)"
		}
		fmt.Printf("statusFilter: %s\n", status)
		fmt.Printf("sortBy:       %s\n", sortBy)
		return nil
	},
}

var (
	filterStatusFlag string
	filterSortFlag   string
)

var filtersSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the leads view state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("status") && !cmd.Flags().Changed("sort") {
			fmt.Fprintln(os.Stderr, "set: at least one of --status or --sort must be provided")
			os.Exit(exitUserError)
		}
		if filterStatusFlag != "" && !types.ValidLeadStatus(filterStatusFlag) {
			fmt.Fprintf(os.Stderr, "invalid status %q (valid: %s)\n",
				filterStatusFlag, strings.Join(types.LeadStatuses(), ", "))
			os.Exit(exitUserError)
		}

		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "filters set", err)
		}
		defer c.Close()

		c.LeadFilters().Update(func(f *types.LeadFilters) {
			if cmd.Flags().Changed("status") {
				f.StatusFilter = filterStatusFlag
			}
			if cmd.Flags().Changed("sort") {
				f.SortBy = filterSortFlag
			}
		})

		if flagJSON {
			return printJSON(c.LeadFilters().Read())
		}
		return nil
	},
}

var filtersResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the leads view state to defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "filters reset", err)
		}
		defer c.Close()

		c.LeadFilters().Reset()
		if flagJSON {
			return printJSON(c.LeadFilters().Read())
		}
		return nil
	},
}

func init() {
	filtersSetCmd.Flags().StringVar(&filterStatusFlag, "status", "", "status filter (empty means all)")
	filtersSetCmd.Flags().StringVar(&filterSortFlag, "sort", "", "sort order (score-desc, empty means none)")

	filtersCmd.AddCommand(filtersShowCmd)
	filtersCmd.AddCommand(filtersSetCmd)
	filtersCmd.AddCommand(filtersResetCmd)
}
