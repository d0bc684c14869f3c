// Opportunities commands for the sellerdesk CLI.
package main

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/sellerdesk/internal/view"
	"github.com/spf13/cobra"
)

var opportunitiesCmd = &cobra.Command{
	Use:     "opportunities",
	Aliases: []string{"opps"},
	Short:   "Work with the opportunities collection",
}

var (
	oppsSearchFlag  string
	oppsPageFlag    int
	oppsPerPageFlag int
)

var opportunitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List opportunities with search and pagination",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "opportunities list", err)
		}
		defer c.Close()

		if err := c.Opportunities().Load(context.Background()); err != nil {
			fail(exitSysError, "opportunities list", err)
		}

		opps := c.VisibleOpportunities(oppsSearchFlag)
		opps = view.Page(opps, oppsPageFlag, oppsPerPageFlag)

		if flagJSON {
			return printJSON(opps)
		}
		for _, o := range opps {
			converted := ""
			if o.Conversion != nil {
				converted = fmt.Sprintf("  (from lead %d)", o.Conversion.LeadID)
			}
			fmt.Printf("%-4d %-32s %-14s %10s%s\n",
				o.ID, o.Name, o.Stage, o.FormatAmount(), converted)
		}
		return nil
	},
}

func init() {
	opportunitiesListCmd.Flags().StringVar(&oppsSearchFlag, "search", "", "match name or account (case-insensitive substring)")
	opportunitiesListCmd.Flags().IntVar(&oppsPageFlag, "page", 1, "page number")
	opportunitiesListCmd.Flags().IntVar(&oppsPerPageFlag, "per-page", 0, "items per page (0 means all)")

	opportunitiesCmd.AddCommand(opportunitiesListCmd)
}
