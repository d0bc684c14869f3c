// Init command for the sellerdesk CLI.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sellerdesk storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve config directory (flag > env > default) and ensure it
		// exists with a default config.yaml.
		configDir, err := resolveConfigDir()
		if err != nil {
			fail(exitSysError, "init", err)
		}
		if err := ensureConfigDir(configDir); err != nil {
			fail(exitSysError, "init", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			fail(exitSysError, "init", err)
		}

		// Open the console and load both collections, seeding the data
		// directory on first run.
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "init", err)
		}
		defer c.Close()

		if err := c.LoadAll(context.Background()); err != nil {
			fail(exitSysError, "init", err)
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			fail(exitSysError, "init", err)
		}

		fmt.Println("Sellerdesk initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		fmt.Printf("  leads: %d, opportunities: %d\n",
			len(c.Leads().Data()), len(c.Opportunities().Data()))
		return nil
	},
}
