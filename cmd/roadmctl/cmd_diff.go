package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roadm-network/roadmctl/pkg/diff"
	"github.com/roadm-network/roadmctl/pkg/roadm"
)

var diffCmd = &cobra.Command{
	Use:   "diff [device...]",
	Short: "Diff desired configuration against fetched state",
	Long: `Compute each device's changeset from the state stored under data/ by a
previous fetch, and write the checkup documents under checkup/<device>/:

  added_channels.yaml      channels to be created
  removed_channels.yaml    channels only present on the device
  changed_channels.yaml    channels with differing settings (old -> new)
  final_configuration.yaml the document an apply would push

The diff is fully offline; nothing is dialed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := resolveDevices(args)
		if err != nil {
			return err
		}

		runner := newRunner(roadm.Options{})

		var changesets []*diff.ChangeSet
		var failed int
		for _, dev := range devices {
			cs, dir, err := runner.Diff(dev)
			if err != nil {
				if !jsonOutput {
					fmt.Printf("=== %s ===\n%s: %v\n\n", bold(dev.Name), red("ERROR"), err)
				}
				failed++
				continue
			}
			if jsonOutput {
				changesets = append(changesets, cs)
				continue
			}

			fmt.Printf("=== %s ===\n", bold(dev.Name))
			fmt.Printf("Mode: %s\n", cs.Mode)
			fmt.Println("Changes:")
			fmt.Print(cs.String())
			fmt.Printf("Checkup documents: %s\n\n", dir)
		}

		if jsonOutput {
			if err := json.NewEncoder(os.Stdout).Encode(changesets); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("failed to diff %d of %d device(s)", failed, len(devices))
		}
		return nil
	},
}
