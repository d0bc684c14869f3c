// Refresh command for the sellerdesk CLI.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-run the simulated fetch for both collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "refresh", err)
		}
		defer c.Close()

		leadErr := c.Leads().Refresh(context.Background())
		oppErr := c.Opportunities().Refresh(context.Background())
		if leadErr != nil {
			fail(exitSysError, "refresh leads", leadErr)
		}
		if oppErr != nil {
			fail(exitSysError, "refresh opportunities", oppErr)
		}

		fmt.Printf("Refreshed: %d leads, %d opportunities\n",
			len(c.Leads().Data()), len(c.Opportunities().Data()))
		return nil
	},
}
