package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadm-network/roadmctl/pkg/cli"
	"github.com/roadm-network/roadmctl/pkg/roadm"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [device...]",
	Short: "Fetch device state into the workspace",
	Long: `Fetch each device's channel plan and media channels over NETCONF and
store them under data/ for offline inspection and diffing:

  data/<device>_channel_plan.xml
  data/<device>_media_channels.xml

A fetch never changes device configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := resolveDevices(args)
		if err != nil {
			return err
		}
		if err := writeInventory(); err != nil {
			return err
		}

		runner := newRunner(roadm.Options{})

		var failed int
		for _, dev := range devices {
			fmt.Print(cli.DotPad(dev.Name, 32))
			if err := runner.Fetch(dev); err != nil {
				fmt.Printf(" %s: %v\n", red("FAILED"), err)
				failed++
				continue
			}
			fmt.Printf(" %s\n", green("OK"))
		}

		if failed > 0 {
			return fmt.Errorf("failed to fetch %d of %d device(s)", failed, len(devices))
		}
		return nil
	},
}
