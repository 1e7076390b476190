package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadm-network/roadmctl/pkg/inventory"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Write the connection inventory document",
	Long: `Generate inventory.yaml at the workspace root from the loaded device
list. The document groups every device under all.hosts with its address and
credentials, in the schema external orchestration tooling consumes.

The file contains passwords and is written with mode 0600.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := writeInventory(); err != nil {
			return err
		}

		fmt.Printf("Inventory written to %s (%d devices)\n", ws.InventoryPath(), len(cfg.Devices))
		return nil
	},
}

// writeInventory regenerates the inventory document from the loaded device
// list. Commands that dial devices call this first so the connection
// inventory always reflects the configuration being applied.
func writeInventory() error {
	if err := ws.EnsureRoot(); err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}

	inv := inventory.Build(cfg.Devices)
	if err := inv.Write(ws.InventoryPath()); err != nil {
		return fmt.Errorf("writing inventory: %w", err)
	}
	return nil
}
