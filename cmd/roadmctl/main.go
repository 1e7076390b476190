// Roadmctl - CzechLight ROADM Channel Provisioning Tool
//
// A CLI for configuring ROADM optical devices over NETCONF with:
//   - Declarative per-device channel configuration in YAML
//   - A diff-and-confirm workflow: fetch, diff, checkup, apply
//   - Dry-run by default (preview changes, require -x to execute)
//   - Per-device checkup documents for operator review
//   - Audit logging of every run
//
// The working cycle:
//
//	roadmctl fetch                # store device state under data/
//	roadmctl diff                 # offline diff + checkup documents
//	roadmctl run                  # full pipeline, preview only
//	roadmctl run -x               # full pipeline, apply changes
//	roadmctl run -x roadm-prague  # apply one device only
//
// Devices with validate: true additionally require an interactive
// confirmation (or -y) before anything is pushed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/roadm-network/roadmctl/pkg/audit"
	"github.com/roadm-network/roadmctl/pkg/checkup"
	"github.com/roadm-network/roadmctl/pkg/cli"
	"github.com/roadm-network/roadmctl/pkg/netconf"
	"github.com/roadm-network/roadmctl/pkg/roadm"
	"github.com/roadm-network/roadmctl/pkg/settings"
	"github.com/roadm-network/roadmctl/pkg/spec"
	"github.com/roadm-network/roadmctl/pkg/util"
	"github.com/roadm-network/roadmctl/pkg/version"
)

var (
	// Global option flags
	configDir    string // -C, --config
	workspaceDir string // -w, --workspace
	executeMode  bool   // -x, on write commands
	assumeYes    bool   // -y, run only
	strictMode   bool   // --strict, run only
	verbose      bool   // -v
	jsonOutput   bool   // --json, on list commands

	// Global state
	userSettings *settings.Settings
	cfg          *spec.Config
	ws           *roadm.Workspace
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "roadmctl",
	Short:             "CzechLight ROADM Channel Provisioning Tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Roadmctl configures CzechLight ROADM devices over NETCONF.

Desired channels are declared per device in a configuration directory;
roadmctl fetches each device's channel plan and media channels, diffs them
against the declaration, writes checkup documents for review, and applies
the final configuration. Write commands preview by default — use -x to
execute.

  roadmctl run [device...] [-x]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Piped output gets no ANSI codes
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			cli.DisableColor()
		}

		// Skip initialization for certain commands
		if isSettingsOrHelp(cmd) {
			return nil
		}

		// Load user settings
		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		// Apply defaults from settings
		if configDir == "" {
			configDir = userSettings.GetConfigDir()
		}
		if workspaceDir == "" {
			workspaceDir = userSettings.GetWorkspaceDir()
		}

		// Set log level: quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		ws = roadm.NewWorkspace(workspaceDir)

		// Initialize audit logger
		auditLogger, err := audit.NewFileLogger(ws.AuditLogPath(), audit.RotationConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 10,
		})
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		// Audit queries work without a loaded configuration
		if !needsConfig(cmd) {
			return nil
		}

		cfg, err = spec.NewLoader(configDir).Load()
		if err != nil {
			return fmt.Errorf("loading configuration from %s: %w", configDir, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "C", "", "Configuration directory (devices.yaml + per-device channel files)")
	rootCmd.PersistentFlags().StringVarP(&workspaceDir, "workspace", "w", "", "Workspace directory for data/, backup/ and checkup/")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Write flags (-x) and output flags (--json) are local to commands that
	// use them. Use addWriteFlags(cmd) and addOutputFlags(cmd) to register.
	addWriteFlags(runCmd)

	for _, cmd := range []*cobra.Command{diffCmd, devicesCmd, auditCmd} {
		addOutputFlags(cmd)
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "pipeline", Title: "Pipeline Commands:"},
		&cobra.Group{ID: "inspect", Title: "Inspection Commands:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{runCmd, fetchCmd, diffCmd, inventoryCmd} {
		cmd.GroupID = "pipeline"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{devicesCmd, auditCmd} {
		cmd.GroupID = "inspect"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{settingsCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("roadmctl dev build (use 'make build' for version info)")
		} else {
			fmt.Printf("roadmctl %s (%s)\n", version.Version, version.GitCommit)
		}
	},
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings, help,
// or version command. These run without any initialization.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings":
			return true
		}
	}
	return false
}

// needsConfig reports whether cmd operates on the loaded configuration.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "audit" {
			return false
		}
	}
	return true
}

// addWriteFlags registers -x/--execute as a local flag.
func addWriteFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&executeMode, "execute", "x", false, "Execute changes (default is dry-run)")
}

// addOutputFlags registers --json as a local flag.
// For parent commands this is a PersistentFlag so subcommands inherit.
func addOutputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if cmd.HasSubCommands() {
		flags = cmd.PersistentFlags()
	}
	flags.BoolVar(&jsonOutput, "json", false, "JSON output")
}

// resolveDevices maps command arguments to configured devices.
// No arguments selects every device in the configuration.
func resolveDevices(args []string) ([]spec.Device, error) {
	if len(args) == 0 {
		return cfg.Devices, nil
	}
	devices := make([]spec.Device, 0, len(args))
	for _, name := range args {
		d, ok := cfg.Device(name)
		if !ok {
			return nil, fmt.Errorf("device %s not found in %s", name, spec.DeviceListFile)
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// newRunner builds the pipeline runner for the loaded configuration.
func newRunner(opts roadm.Options) *roadm.Runner {
	return roadm.NewRunner(cfg, ws, dialer(), opts)
}

// dialer returns the NETCONF dialer used by the runner. Passwords the
// configuration leaves empty are prompted for once per device and reused
// across the fetch and apply sessions of a run.
func dialer() roadm.Dialer {
	opts := netconf.Options{
		Port:    userSettings.GetPort(),
		Timeout: userSettings.GetTimeout(),
	}
	prompted := make(map[string]string)
	return func(d spec.Device) (roadm.Session, error) {
		if d.Password == "" {
			pw, ok := prompted[d.Name]
			if !ok {
				var err error
				pw, err = promptPassword(d)
				if err != nil {
					return nil, err
				}
				prompted[d.Name] = pw
			}
			d.Password = pw
		}
		return netconf.Dial(d, opts)
	}
}

// promptPassword reads a device password from the terminal.
func promptPassword(d spec.Device) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no password configured for %s and stdin is not a terminal", d.Name)
	}
	fmt.Printf("Password for %s@%s: ", d.Username, d.Name)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password for %s: %w", d.Name, err)
	}
	return string(pw), nil
}

// confirmer picks the confirmation gate for validate-flagged devices:
// -y approves everything, an interactive terminal prompts, and anything
// else leaves those devices pending.
func confirmer() checkup.Confirmer {
	if assumeYes {
		return checkup.AutoConfirmer(true)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return checkup.NewPromptConfirmer(os.Stdin, os.Stdout)
	}
	return nil
}

// Helper to print dry-run notice
func printDryRunNotice() {
	if !executeMode {
		fmt.Println("\n" + yellow("DRY-RUN: No changes applied. Use -x to execute."))
	}
}

// Color helpers — delegate to pkg/cli
func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
func bold(s string) string   { return cli.Bold(s) }
