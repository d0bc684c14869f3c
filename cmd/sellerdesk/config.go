// Config commands for the sellerdesk CLI. These manage the persisted
// simulation settings, not the CLI's own config.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the persisted simulation settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the simulation settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "config show", err)
		}
		defer c.Close()

		cfg := c.Simulation().Read()
		if flagJSON {
			return printJSON(cfg)
		}
		fmt.Printf("simulateErrors:     %v\n", cfg.SimulateErrors)
		fmt.Printf("errorChance:        %g\n", cfg.ErrorChance)
		fmt.Printf("leadsDelay:         %dms\n", cfg.LeadsDelayMs)
		fmt.Printf("opportunitiesDelay: %dms\n", cfg.OpportunitiesDelayMs)
		return nil
	},
}

var (
	cfgSimulateErrorsFlag bool
	cfgErrorChanceFlag    float64
	cfgLeadsDelayFlag     int
	cfgOppsDelayFlag      int
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update simulation settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("simulate-errors") && !cmd.Flags().Changed("error-chance") &&
			!cmd.Flags().Changed("leads-delay") && !cmd.Flags().Changed("opps-delay") {
			fmt.Fprintln(os.Stderr, "set: at least one setting flag must be provided")
			os.Exit(exitUserError)
		}

		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "config set", err)
		}
		defer c.Close()

		c.Simulation().Update(func(cfg *types.SimulationConfig) {
			if cmd.Flags().Changed("simulate-errors") {
				cfg.SimulateErrors = cfgSimulateErrorsFlag
			}
			if cmd.Flags().Changed("error-chance") {
				cfg.ErrorChance = cfgErrorChanceFlag
			}
			if cmd.Flags().Changed("leads-delay") {
				cfg.LeadsDelayMs = cfgLeadsDelayFlag
			}
			if cmd.Flags().Changed("opps-delay") {
				cfg.OpportunitiesDelayMs = cfgOppsDelayFlag
			}
		})

		if flagJSON {
			return printJSON(c.Simulation().Read())
		}
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset simulation settings to defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "config reset", err)
		}
		defer c.Close()

		c.Simulation().Reset()
		if flagJSON {
			return printJSON(c.Simulation().Read())
		}
		return nil
	},
}

func init() {
	configSetCmd.Flags().BoolVar(&cfgSimulateErrorsFlag, "simulate-errors", false, "inject simulated transport failures")
	configSetCmd.Flags().Float64Var(&cfgErrorChanceFlag, "error-chance", 0.1, "failure probability in [0, 1]")
	configSetCmd.Flags().IntVar(&cfgLeadsDelayFlag, "leads-delay", 1500, "simulated leads latency in milliseconds")
	configSetCmd.Flags().IntVar(&cfgOppsDelayFlag, "opps-delay", 1500, "simulated opportunities latency in milliseconds")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
}
