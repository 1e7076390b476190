// Package inventory renders the host inventory document consumed by the
// transport collaborator. Pure transformation, no network activity.
package inventory

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roadm-network/roadmctl/pkg/spec"
)

// Host is one inventory entry. The field names follow the Ansible inventory
// schema the original tooling consumed, so existing playbooks keep working.
type Host struct {
	Host     string `yaml:"ansible_host"`
	User     string `yaml:"ansible_user"`
	Password string `yaml:"ansible_password"`
	Port     int    `yaml:"ansible_port,omitempty"`
}

// Group holds the host entries keyed by device name.
type Group struct {
	Hosts map[string]Host `yaml:"hosts"`
}

// Inventory is the full inventory document.
type Inventory struct {
	All Group `yaml:"all"`
}

// Build creates the inventory for a device list.
func Build(devices []spec.Device) *Inventory {
	inv := &Inventory{All: Group{Hosts: make(map[string]Host, len(devices))}}
	for _, d := range devices {
		inv.All.Hosts[d.Name] = Host{
			Host:     d.IPAddress,
			User:     d.Username,
			Password: d.Password,
			Port:     d.Port,
		}
	}
	return inv
}

// Marshal renders the inventory as YAML. Host entries come out sorted by
// device name.
func (inv *Inventory) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(inv); err != nil {
		return nil, fmt.Errorf("rendering inventory: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("rendering inventory: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the inventory to a file.
func (inv *Inventory) Write(path string) error {
	doc, err := inv.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, doc, 0600); err != nil {
		return fmt.Errorf("writing inventory: %w", err)
	}
	return nil
}
