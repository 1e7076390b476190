package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roadm-network/roadmctl/pkg/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View the audit log",
	Long: `View the audit log of pipeline runs.

Every fetch, diff, run and reachability check is logged with the user,
device, mode, outcome and duration. The log lives at <workspace>/audit.log.

Examples:
  roadmctl audit list --device roadm-prague
  roadmctl audit list --last 24h
  roadmctl audit list --outcome applied
  roadmctl audit list --failures`,
}

var (
	auditDevice    string
	auditUser      string
	auditOperation string
	auditOutcome   string
	auditLast      string
	auditLimit     int
	auditFailures  bool
)

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit events",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := audit.Filter{
			Device:      auditDevice,
			User:        auditUser,
			Operation:   auditOperation,
			Outcome:     auditOutcome,
			Limit:       auditLimit,
			FailureOnly: auditFailures,
		}

		// Parse --last duration
		if auditLast != "" {
			duration, err := time.ParseDuration(auditLast)
			if err != nil {
				return fmt.Errorf("invalid duration: %s", auditLast)
			}
			filter.StartTime = time.Now().Add(-duration)
		}

		events, err := audit.Query(filter)
		if err != nil {
			return fmt.Errorf("querying audit log: %w", err)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(events)
		}

		if len(events) == 0 {
			fmt.Println("No audit events found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIMESTAMP\tUSER\tDEVICE\tOPERATION\tMODE\tOUTCOME\tSTATUS")
		fmt.Fprintln(w, "---------\t----\t------\t---------\t----\t-------\t------")

		for _, event := range events {
			status := green("ok")
			if !event.Success {
				status = red("failed")
			}

			outcome := event.Outcome
			if outcome == "" {
				outcome = "-"
			}
			mode := event.Mode
			if mode == "" {
				mode = "-"
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				event.Timestamp.Format("2006-01-02 15:04:05"),
				event.User,
				event.Device,
				event.Operation,
				mode,
				outcome,
				status,
			)
		}
		w.Flush()

		return nil
	},
}

func init() {
	auditListCmd.Flags().StringVar(&auditDevice, "device", "", "Filter by device")
	auditListCmd.Flags().StringVar(&auditUser, "user", "", "Filter by user")
	auditListCmd.Flags().StringVar(&auditOperation, "operation", "", "Filter by operation (fetch, diff, apply, check)")
	auditListCmd.Flags().StringVar(&auditOutcome, "outcome", "", "Filter by outcome (applied, dry-run, declined, pending, failed)")
	auditListCmd.Flags().StringVar(&auditLast, "last", "", "Show events from last duration (e.g., 24h)")
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 100, "Maximum events to show")
	auditListCmd.Flags().BoolVar(&auditFailures, "failures", false, "Show only failed operations")

	auditCmd.AddCommand(auditListCmd)
}
