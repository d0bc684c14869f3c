// Version command for the sellerdesk CLI.
package main

import (
	"fmt"

	"github.com/mesh-intelligence/sellerdesk/pkg/sellerdesk"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sellerdesk version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sellerdesk", sellerdesk.Version)
	},
}
