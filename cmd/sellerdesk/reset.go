// Reset command for the sellerdesk CLI.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all data to the bundled seed datasets",
	Long: `Reset removes the persisted collections and leads view state, then
re-seeds both collections from the bundled datasets. The simulation
settings are preserved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "reset", err)
		}
		defer c.Close()

		if err := c.ResetAllData(context.Background()); err != nil {
			fail(exitSysError, "reset", err)
		}

		fmt.Printf("Data reset: %d leads, %d opportunities\n",
			len(c.Leads().Data()), len(c.Opportunities().Data()))
		return nil
	},
}
