package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roadm-network/roadmctl/pkg/channel"
	"github.com/roadm-network/roadmctl/pkg/util"
)

// DeviceListFile is the device list filename inside the config directory.
const DeviceListFile = "devices.yaml"

// Loader reads and validates files from a configuration directory.
type Loader struct {
	configDir string
}

// NewLoader creates a loader scoped to a configuration directory.
func NewLoader(configDir string) *Loader {
	return &Loader{configDir: configDir}
}

// Dir returns the configuration directory.
func (l *Loader) Dir() string {
	return l.configDir
}

// DeviceListPath returns the path of the device list file.
func (l *Loader) DeviceListPath() string {
	return filepath.Join(l.configDir, DeviceListFile)
}

// ChannelFilePath returns the path of a device's channel file.
func (l *Loader) ChannelFilePath(device string) string {
	return filepath.Join(l.configDir, device+".yaml")
}

// LoadDevices reads and validates the device list. Validation fails on the
// first malformed device so the error names exactly one device and field.
func (l *Loader) LoadDevices() ([]Device, error) {
	data, err := os.ReadFile(l.DeviceListPath())
	if err != nil {
		return nil, fmt.Errorf("reading device list: %w", err)
	}

	var devices []Device
	if err := yaml.Unmarshal(data, &devices); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.DeviceListPath(), err)
	}
	if len(devices) == 0 {
		return nil, util.NewConfigError("", "devices", "device list is empty")
	}

	seen := make(map[string]bool, len(devices))
	for i, d := range devices {
		if err := validateDevice(i, d); err != nil {
			return nil, err
		}
		if seen[d.Name] {
			return nil, util.NewConfigError(d.Name, "name", "duplicate device name")
		}
		seen[d.Name] = true
	}
	return devices, nil
}

func validateDevice(index int, d Device) error {
	// A device without a name is identified by its list position.
	name := d.Name
	if name == "" {
		name = fmt.Sprintf("devices[%d]", index)
	}

	required := []struct {
		field string
		value string
	}{
		{"name", d.Name},
		{"ip_address", d.IPAddress},
		{"username", d.Username},
	}
	for _, r := range required {
		if r.value == "" {
			return util.NewConfigError(name, r.field, "required field is missing")
		}
	}

	if !util.IsValidIPv4(d.IPAddress) {
		return util.NewConfigError(name, "ip_address", fmt.Sprintf("%q is not a valid IPv4 address", d.IPAddress))
	}
	if !ValidMode(d.Mode) {
		return &util.ModeError{Device: name, Mode: d.Mode}
	}
	return nil
}

// LoadChannels reads and validates one device's desired channel list from
// <device>.yaml. An empty list is valid: under replace mode it clears the
// device. Identity-key collisions within the file are rejected here, before
// any device state is fetched.
func (l *Loader) LoadChannels(device string) ([]ChannelSpec, error) {
	data, err := os.ReadFile(l.ChannelFilePath(device))
	if err != nil {
		return nil, fmt.Errorf("reading channel list for %s: %w", device, err)
	}

	var channels []ChannelSpec
	if err := yaml.Unmarshal(data, &channels); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.ChannelFilePath(device), err)
	}

	keys := make(map[channel.Key]bool, len(channels))
	for i, c := range channels {
		if err := validateChannel(device, i, c); err != nil {
			return nil, err
		}
		key := c.Channel().Key()
		if keys[key] {
			return nil, &util.DuplicateKeyError{Scope: device + " channel list", Key: key.String()}
		}
		keys[key] = true
	}
	return channels, nil
}

func validateChannel(device string, index int, c ChannelSpec) error {
	missing := func(field string) error {
		return util.NewConfigError(device, fmt.Sprintf("channels[%d].%s", index, field), "required field is missing")
	}
	if c.LeafPort == "" {
		return missing("leaf_port")
	}
	if c.Attenuation == nil {
		return missing("attenuation")
	}
	if c.FrequencyCenter == nil {
		return missing("frequency_center")
	}
	if c.FrequencySpan == nil {
		return missing("frequency_span")
	}
	return nil
}

// Load reads the device list and every device's channel file. Channel-file
// problems are accumulated across devices so the operator can fix the whole
// configuration in one pass.
func (l *Loader) Load() (*Config, error) {
	devices, err := l.LoadDevices()
	if err != nil {
		return nil, fmt.Errorf("loading device list: %w", err)
	}

	cfg := &Config{
		Devices:  devices,
		Channels: make(map[string][]ChannelSpec, len(devices)),
	}

	v := &util.ValidationBuilder{}
	for _, d := range devices {
		channels, err := l.LoadChannels(d.Name)
		if err != nil {
			v.AddErrorf("device %s: %v", d.Name, err)
			continue
		}
		cfg.Channels[d.Name] = channels
	}
	if err := v.Build(); err != nil {
		return nil, err
	}
	return cfg, nil
}
