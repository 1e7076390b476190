// Package spec handles loading and validating the declarative YAML
// configuration: the device list plus each device's desired channel list.
package spec

import (
	"net"
	"strconv"

	"github.com/roadm-network/roadmctl/pkg/channel"
)

// Configuration modes controlling how the final document is applied.
const (
	ModeMerge   = "merge"
	ModeReplace = "replace"
)

// ValidMode reports whether mode is one of the supported values.
func ValidMode(mode string) bool {
	return mode == ModeMerge || mode == ModeReplace
}

// Device is one entry of the devices.yaml list.
type Device struct {
	Name      string `yaml:"name"`
	IPAddress string `yaml:"ip_address"`
	Username  string `yaml:"username"`

	// Password may be empty in the file; the CLI prompts for it at run time.
	Password string `yaml:"password"`

	// Mode selects merge or replace semantics for the apply stage.
	Mode string `yaml:"mode"`

	// Validate gates the apply stage on operator confirmation.
	Validate bool `yaml:"validate"`

	// Port overrides the NETCONF port when non-zero.
	Port int `yaml:"port,omitempty"`

	Description string `yaml:"description,omitempty"`
}

// Addr returns the NETCONF dial target, falling back to def when the
// device does not set an explicit port.
func (d Device) Addr(def int) string {
	port := d.Port
	if port <= 0 {
		port = def
	}
	return net.JoinHostPort(d.IPAddress, strconv.Itoa(port))
}

// ChannelSpec is one desired-channel record from a device's channel file.
// Numeric fields are pointers so a missing field can be told apart from a
// legitimate zero during validation.
type ChannelSpec struct {
	Description     string   `yaml:"description,omitempty"`
	LeafPort        string   `yaml:"leaf_port"`
	Attenuation     *float64 `yaml:"attenuation"`
	FrequencyCenter *float64 `yaml:"frequency_center"`
	FrequencySpan   *float64 `yaml:"frequency_span"`
}

// Channel converts the record to the unified channel model. The result is
// unresolved: the plan name and edge frequencies are filled in later by
// channel-plan resolution.
func (c ChannelSpec) Channel() channel.Channel {
	ch := channel.Channel{
		Port:        c.LeafPort,
		Description: c.Description,
	}
	if c.Attenuation != nil {
		ch.Attenuation = *c.Attenuation
	}
	if c.FrequencyCenter != nil {
		ch.CenterTHz = *c.FrequencyCenter
	}
	if c.FrequencySpan != nil {
		ch.SpanGHz = *c.FrequencySpan
	}
	return ch
}

// Config is a fully loaded configuration directory: the device list plus
// every device's desired channel list, keyed by device name.
type Config struct {
	Devices  []Device
	Channels map[string][]ChannelSpec
}

// Device looks up a device by name.
func (c *Config) Device(name string) (Device, bool) {
	for _, d := range c.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return Device{}, false
}

// DeviceNames returns the configured device names in file order.
func (c *Config) DeviceNames() []string {
	names := make([]string, 0, len(c.Devices))
	for _, d := range c.Devices {
		names = append(names, d.Name)
	}
	return names
}
