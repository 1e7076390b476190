package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadm-network/roadmctl/pkg/roadm"
	"github.com/roadm-network/roadmctl/pkg/util"
)

var runCmd = &cobra.Command{
	Use:   "run [device...]",
	Short: "Fetch, diff and apply channel configuration",
	Long: `Run the full pipeline for the selected devices (all devices when none
are named): fetch the channel plan and media channels, diff them against
the desired configuration, write checkup documents, and apply the final
media-channel document.

Without -x the run stops after writing the checkup documents. With -x the
running configuration is backed up to backup/ and the final document is
pushed with the device's merge or replace mode. Devices with validate: true
additionally ask for confirmation before the push; -y answers yes for all
of them.

Failures are isolated: a device that cannot be fetched or applied is
reported and the run moves on. The exit code is non-zero when any device
failed, and --strict extends that to declined or unconfirmed devices.

Examples:
  roadmctl run                     # Preview all devices
  roadmctl run roadm-prague        # Preview one device
  roadmctl run -x                  # Apply all devices
  roadmctl run -x -y               # Apply without confirmation prompts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := resolveDevices(args)
		if err != nil {
			return err
		}
		if err := writeInventory(); err != nil {
			return err
		}

		runner := newRunner(roadm.Options{
			Execute:   executeMode,
			Confirmer: confirmer(),
		})

		fmt.Printf("Processing %d device(s)\n\n", len(devices))

		var declined, pending, failed int
		for _, dev := range devices {
			fmt.Printf("=== %s ===\n", bold(dev.Name))

			res := runner.RunDevice(dev)
			printRunResult(res)
			fmt.Println()

			switch res.Outcome {
			case roadm.OutcomeDeclined:
				declined++
			case roadm.OutcomePending:
				pending++
			case roadm.OutcomeFailed:
				failed++
			}
		}

		printDryRunNotice()

		if failed > 0 {
			return fmt.Errorf("%d of %d device(s) failed", failed, len(devices))
		}
		if strictMode && declined+pending > 0 {
			return fmt.Errorf("%d device(s) not confirmed: %w", declined+pending, util.ErrDeclined)
		}
		return nil
	},
}

func printRunResult(res *roadm.Result) {
	switch res.Outcome {
	case roadm.OutcomeDryRun:
		if res.Changes != nil {
			fmt.Printf("Mode: %s\n", res.Changes.Mode)
			fmt.Println("Changes:")
			fmt.Print(res.Changes.String())
		}
		fmt.Printf("Checkup documents: %s\n", res.CheckupDir)

	case roadm.OutcomeApplied:
		added, removed, changed := res.Changes.Counts()
		fmt.Printf("%s (%d added, %d removed, %d changed)\n",
			green("Changes applied successfully."), added, removed, changed)

	case roadm.OutcomeDeclined:
		fmt.Println(yellow("Declined by operator, device skipped."))

	case roadm.OutcomePending:
		fmt.Println(yellow("Pending confirmation: run interactively or pass -y."))

	case roadm.OutcomeFailed:
		fmt.Printf("%s: %v\n", red("ERROR"), res.Err)
	}
}

func init() {
	runCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Confirm all validate-flagged devices without prompting")
	runCmd.Flags().BoolVar(&strictMode, "strict", false, "Treat declined or unconfirmed devices as failures")
}
