// Storage command for the sellerdesk CLI.
package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Show storage usage per key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "storage", err)
		}
		defer c.Close()

		info := c.StorageInfo()
		if flagJSON {
			return printJSON(info)
		}

		keys := make([]string, 0, len(info.KeyBytes))
		for key := range info.KeyBytes {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Printf("%-24s %8d bytes\n", key, info.KeyBytes[key])
		}
		fmt.Printf("%-24s %8d bytes (%.2f%% of %d)\n",
			"total", info.TotalBytes, info.UsedPercent, info.MaxBytes)
		return nil
	},
}
