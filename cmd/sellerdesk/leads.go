// Leads commands for the sellerdesk CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/sellerdesk/internal/view"
	"github.com/mesh-intelligence/sellerdesk/pkg/types"
	"github.com/spf13/cobra"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Work with the leads collection",
}

var (
	leadsSearchFlag  string
	leadsStatusFlag  string
	leadsSortFlag    string
	leadsPageFlag    int
	leadsPerPageFlag int
)

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads with search, filter, sort, and pagination",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "leads list", err)
		}
		defer c.Close()

		if err := c.Leads().Load(context.Background()); err != nil {
			fail(exitSysError, "leads list", err)
		}

		// Flags override the persisted view state for this invocation
		// without writing it back.
		filters := c.LeadFilters().Read()
		if cmd.Flags().Changed("status") {
			if leadsStatusFlag != "" && !types.ValidLeadStatus(leadsStatusFlag) {
				fmt.Fprintf(os.Stderr, "invalid status %q (valid: %s)\n",
					leadsStatusFlag, strings.Join(types.LeadStatuses(), ", "))
				os.Exit(exitUserError)
			}
			filters.StatusFilter = leadsStatusFlag
		}
		if cmd.Flags().Changed("sort") {
			filters.SortBy = leadsSortFlag
		}

		leads := view.VisibleLeads(c.Leads().Data(), leadsSearchFlag, filters)
		leads = view.Page(leads, leadsPageFlag, leadsPerPageFlag)

		if flagJSON {
			return printJSON(leads)
		}
		for _, l := range leads {
			fmt.Printf("%-4d %-24s %-20s %-10s %4d\n",
				l.ID, l.Name, l.Company, l.Status, l.Score)
		}
		return nil
	},
}

var leadsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid lead id %q\n", args[0])
			os.Exit(exitUserError)
		}

		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "leads get", err)
		}
		defer c.Close()

		if err := c.Leads().Load(context.Background()); err != nil {
			fail(exitSysError, "leads get", err)
		}

		lead, err := c.Leads().Get(id)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "lead %d not found\n", id)
				os.Exit(exitUserError)
			}
			fail(exitSysError, "leads get", err)
		}

		if flagJSON {
			return printJSON(lead)
		}
		fmt.Printf("ID:      %d\n", lead.ID)
		fmt.Printf("Name:    %s\n", lead.Name)
		fmt.Printf("Company: %s\n", lead.Company)
		fmt.Printf("Email:   %s\n", lead.Email)
		fmt.Printf("Source:  %s\n", lead.Source)
		fmt.Printf("Status:  %s\n", lead.Status)
		fmt.Printf("Score:   %d\n", lead.Score)
		return nil
	},
}

var (
	leadUpdateNameFlag    string
	leadUpdateCompanyFlag string
	leadUpdateEmailFlag   string
	leadUpdateSourceFlag  string
	leadUpdateStatusFlag  string
	leadUpdateScoreFlag   int
)

var leadsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update lead fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid lead id %q\n", args[0])
			os.Exit(exitUserError)
		}

		if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("company") &&
			!cmd.Flags().Changed("email") && !cmd.Flags().Changed("source") &&
			!cmd.Flags().Changed("status") && !cmd.Flags().Changed("score") {
			fmt.Fprintln(os.Stderr, "update: at least one field flag must be provided")
			os.Exit(exitUserError)
		}

		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "leads update", err)
		}
		defer c.Close()

		if err := c.Leads().Load(context.Background()); err != nil {
			fail(exitSysError, "leads update", err)
		}

		lead, err := c.Leads().Get(id)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "lead %d not found\n", id)
				os.Exit(exitUserError)
			}
			fail(exitSysError, "leads update", err)
		}

		if cmd.Flags().Changed("name") {
			lead.Name = leadUpdateNameFlag
		}
		if cmd.Flags().Changed("company") {
			lead.Company = leadUpdateCompanyFlag
		}
		if cmd.Flags().Changed("email") {
			lead.Email = leadUpdateEmailFlag
		}
		if cmd.Flags().Changed("source") {
			lead.Source = leadUpdateSourceFlag
		}
		if cmd.Flags().Changed("status") {
			lead.Status = leadUpdateStatusFlag
		}
		if cmd.Flags().Changed("score") {
			lead.Score = leadUpdateScoreFlag
		}

		if err := c.SaveLead(lead); err != nil {
			switch {
			case errors.Is(err, types.ErrInvalidEmail):
				fmt.Fprintf(os.Stderr, "invalid email %q\n", lead.Email)
				os.Exit(exitUserError)
			case errors.Is(err, types.ErrInvalidStatus):
				fmt.Fprintf(os.Stderr, "invalid status %q (valid: %s)\n",
					lead.Status, strings.Join(types.LeadStatuses(), ", "))
				os.Exit(exitUserError)
			case errors.Is(err, types.ErrEmptyName):
				fmt.Fprintln(os.Stderr, "lead name must not be empty")
				os.Exit(exitUserError)
			case errors.Is(err, types.ErrNegativeScore):
				fmt.Fprintln(os.Stderr, "lead score must not be negative")
				os.Exit(exitUserError)
			default:
				fail(exitSysError, "leads update", err)
			}
		}

		if flagJSON {
			return printJSON(lead)
		}
		return nil
	},
}

var leadsConvertCmd = &cobra.Command{
	Use:   "convert <id>",
	Short: "Convert a lead into an opportunity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid lead id %q\n", args[0])
			os.Exit(exitUserError)
		}

		c, err := openConsole()
		if err != nil {
			fail(exitSysError, "leads convert", err)
		}
		defer c.Close()

		if err := c.LoadAll(context.Background()); err != nil {
			fail(exitSysError, "leads convert", err)
		}

		opp, err := c.ConvertLead(id)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "lead %d not found\n", id)
				os.Exit(exitUserError)
			}
			fail(exitSysError, "leads convert", err)
		}

		if flagJSON {
			return printJSON(opp)
		}
		return nil
	},
}

func init() {
	leadsListCmd.Flags().StringVar(&leadsSearchFlag, "search", "", "match name or company (case-insensitive substring)")
	leadsListCmd.Flags().StringVar(&leadsStatusFlag, "status", "", "filter by exact status")
	leadsListCmd.Flags().StringVar(&leadsSortFlag, "sort", "", "sort order (score-desc)")
	leadsListCmd.Flags().IntVar(&leadsPageFlag, "page", 1, "page number")
	leadsListCmd.Flags().IntVar(&leadsPerPageFlag, "per-page", 0, "items per page (0 means all)")

	leadsUpdateCmd.Flags().StringVar(&leadUpdateNameFlag, "name", "", "set lead name")
	leadsUpdateCmd.Flags().StringVar(&leadUpdateCompanyFlag, "company", "", "set lead company")
	leadsUpdateCmd.Flags().StringVar(&leadUpdateEmailFlag, "email", "", "set lead email")
	leadsUpdateCmd.Flags().StringVar(&leadUpdateSourceFlag, "source", "", "set lead source")
	leadsUpdateCmd.Flags().StringVar(&leadUpdateStatusFlag, "status", "", "set lead status (New, Contacted, Qualified)")
	leadsUpdateCmd.Flags().IntVar(&leadUpdateScoreFlag, "score", 0, "set lead score")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsGetCmd)
	leadsCmd.AddCommand(leadsUpdateCmd)
	leadsCmd.AddCommand(leadsConvertCmd)
}
