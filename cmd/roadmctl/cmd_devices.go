package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roadm-network/roadmctl/pkg/cli"
	"github.com/roadm-network/roadmctl/pkg/roadm"
	"github.com/roadm-network/roadmctl/pkg/spec"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Inspect the configured devices",
	Long: `Inspect the device list loaded from the configuration directory.

Examples:
  roadmctl devices list
  roadmctl devices show roadm-prague
  roadmctl devices check`,
}

// deviceView is the JSON shape for device listings. Passwords stay out.
type deviceView struct {
	Name        string `json:"name"`
	IPAddress   string `json:"ip_address"`
	Port        int    `json:"port,omitempty"`
	Username    string `json:"username"`
	Mode        string `json:"mode"`
	Validate    bool   `json:"validate"`
	Description string `json:"description,omitempty"`
	Channels    int    `json:"channels"`
}

func viewOf(d spec.Device) deviceView {
	return deviceView{
		Name:        d.Name,
		IPAddress:   d.IPAddress,
		Port:        d.Port,
		Username:    d.Username,
		Mode:        d.Mode,
		Validate:    d.Validate,
		Description: d.Description,
		Channels:    len(cfg.Channels[d.Name]),
	}
}

var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			views := make([]deviceView, 0, len(cfg.Devices))
			for _, d := range cfg.Devices {
				views = append(views, viewOf(d))
			}
			return json.NewEncoder(os.Stdout).Encode(views)
		}

		t := cli.NewTable("NAME", "IP ADDRESS", "MODE", "VALIDATE", "CHANNELS")
		for _, d := range cfg.Devices {
			validate := "no"
			if d.Validate {
				validate = "yes"
			}
			t.Row(d.Name, d.Addr(userSettings.GetPort()), d.Mode, validate,
				strconv.Itoa(len(cfg.Channels[d.Name])))
		}
		t.Flush()
		return nil
	},
}

var devicesShowCmd = &cobra.Command{
	Use:   "show <device>",
	Short: "Show one device and its desired channels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, ok := cfg.Device(args[0])
		if !ok {
			return fmt.Errorf("device %s not found in %s", args[0], spec.DeviceListFile)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(viewOf(d))
		}

		fmt.Printf("Name:        %s\n", d.Name)
		fmt.Printf("Address:     %s\n", d.Addr(userSettings.GetPort()))
		fmt.Printf("Username:    %s\n", d.Username)
		fmt.Printf("Mode:        %s\n", d.Mode)
		fmt.Printf("Validate:    %v\n", d.Validate)
		if d.Description != "" {
			fmt.Printf("Description: %s\n", d.Description)
		}

		channels := cfg.Channels[d.Name]
		fmt.Printf("\nDesired channels (%d):\n", len(channels))
		if len(channels) == 0 {
			return nil
		}

		t := cli.NewTable("PORT", "CENTER (THz)", "SPAN (GHz)", "ATTENUATION (dB)", "DESCRIPTION")
		for _, c := range channels {
			t.Row(c.LeafPort,
				fmt.Sprintf("%g", *c.FrequencyCenter),
				fmt.Sprintf("%g", *c.FrequencySpan),
				fmt.Sprintf("%g", *c.Attenuation),
				c.Description)
		}
		t.Flush()
		return nil
	},
}

var devicesCheckCmd = &cobra.Command{
	Use:   "check [device...]",
	Short: "Check NETCONF reachability of devices",
	Long:  `Dial each selected device and report whether a NETCONF session comes up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := resolveDevices(args)
		if err != nil {
			return err
		}

		runner := newRunner(roadm.Options{})

		var failed int
		for _, dev := range devices {
			fmt.Print(cli.DotPad(dev.Name, 32))
			if err := runner.Check(dev); err != nil {
				fmt.Printf(" %s: %v\n", red("FAILED"), err)
				failed++
				continue
			}
			fmt.Printf(" %s\n", green("OK"))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d device(s) unreachable", failed, len(devices))
		}
		return nil
	},
}

func init() {
	devicesCmd.AddCommand(devicesListCmd)
	devicesCmd.AddCommand(devicesShowCmd)
	devicesCmd.AddCommand(devicesCheckCmd)
}
