package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roadm-network/roadmctl/pkg/cli"
	"github.com/roadm-network/roadmctl/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.roadmctl/settings.json.

Settings provide defaults for global flags:
  - config_dir:      Configuration directory (-C default)
  - workspace_dir:   Workspace directory (-w default)
  - port:            NETCONF port for devices without one (default 830)
  - timeout_seconds: NETCONF dial timeout (default 10)

Examples:
  roadmctl settings show
  roadmctl settings set config /etc/roadmctl
  roadmctl settings set workspace /var/lib/roadmctl
  roadmctl settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		t := cli.NewTable("SETTING", "VALUE")

		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}

		printSetting("config_dir", s.ConfigDir)
		printSetting("workspace_dir", s.WorkspaceDir)
		port := ""
		if s.Port != 0 {
			port = strconv.Itoa(s.Port)
		}
		printSetting("port", port)
		timeout := ""
		if s.TimeoutSeconds != 0 {
			timeout = strconv.Itoa(s.TimeoutSeconds)
		}
		printSetting("timeout_seconds", timeout)

		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  config     - Configuration directory (-C flag default)
  workspace  - Workspace directory (-w flag default)
  port       - Default NETCONF port
  timeout    - NETCONF dial timeout in seconds

Examples:
  roadmctl settings set config /etc/roadmctl
  roadmctl settings set port 8300`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]
		value := args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "config", "config_dir":
			s.SetConfigDir(value)
			fmt.Printf("Configuration directory set to: %s\n", value)
		case "workspace", "workspace_dir":
			s.SetWorkspaceDir(value)
			fmt.Printf("Workspace directory set to: %s\n", value)
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil || port <= 0 || port > 65535 {
				return fmt.Errorf("invalid port: %s", value)
			}
			s.Port = port
			fmt.Printf("NETCONF port set to: %d\n", port)
		case "timeout", "timeout_seconds":
			secs, err := strconv.Atoi(value)
			if err != nil || secs <= 0 {
				return fmt.Errorf("invalid timeout: %s", value)
			}
			s.TimeoutSeconds = secs
			fmt.Printf("NETCONF dial timeout set to: %ds\n", secs)
		default:
			return fmt.Errorf("unknown setting: %s (valid: config, workspace, port, timeout)", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <setting>",
	Short: "Get a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]

		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		var value string
		switch setting {
		case "config", "config_dir":
			value = s.ConfigDir
		case "workspace", "workspace_dir":
			value = s.WorkspaceDir
		case "port":
			if s.Port != 0 {
				value = strconv.Itoa(s.Port)
			}
		case "timeout", "timeout_seconds":
			if s.TimeoutSeconds != 0 {
				value = strconv.Itoa(s.TimeoutSeconds)
			}
		default:
			return fmt.Errorf("unknown setting: %s (valid: config, workspace, port, timeout)", setting)
		}

		if value == "" {
			fmt.Println("(not set)")
		} else {
			fmt.Println(value)
		}
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &settings.Settings{}
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("All settings cleared.")
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show settings file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(settings.DefaultSettingsPath())
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}
