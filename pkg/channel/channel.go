// Package channel models ROADM media channels and the device channel plan.
//
// A channel is located by its leaf port and center frequency. Desired
// channels come from YAML configuration (center in THz, span in GHz);
// current channels come from the device's media-channels document, where
// only the plan channel name is carried. The channel plan maps both forms
// onto the same grid: plan frequencies are MHz, so center THz and span GHz
// convert via center*1e6 and span*1e3.
package channel

import (
	"fmt"
	"math"
)

// Frequency unit conversion factors relative to the plan's MHz grid
const (
	centerExp = 1e6 // THz → MHz
	spanExp   = 1e3 // GHz → MHz
)

// Channel is the unified representation of a media channel, shared by the
// desired (YAML) and current (device XML) sides of a diff.
type Channel struct {
	// Name is the channel-plan entry name (e.g. "C59"). Empty until the
	// channel is resolved against a plan.
	Name string `yaml:"name"`

	// Port is the leaf port the channel is added/dropped on. Empty for
	// passthrough entries such as C-band.
	Port string `yaml:"leaf_port"`

	// Attenuation in dB, applied to both add and drop directions.
	Attenuation float64 `yaml:"attenuation"`

	// CenterTHz and SpanGHz locate the channel on the grid.
	CenterTHz float64 `yaml:"frequency_center"`
	SpanGHz   float64 `yaml:"frequency_span"`

	// LowerMHz and UpperMHz are the plan edge frequencies. Zero until
	// resolved against a plan.
	LowerMHz int64 `yaml:"-"`
	UpperMHz int64 `yaml:"-"`

	Description string `yaml:"description,omitempty"`
}

// Key identifies a channel by leaf port and center frequency.
type Key struct {
	Port      string
	CenterMHz int64
}

// String renders the key as "port/centerMHz" for error messages.
func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Port, k.CenterMHz)
}

// CenterMHz returns the center frequency on the plan's MHz grid.
func (c Channel) CenterMHz() int64 {
	return int64(math.Round(c.CenterTHz * centerExp))
}

// Key returns the channel's identity key.
func (c Channel) Key() Key {
	return Key{Port: c.Port, CenterMHz: c.CenterMHz()}
}

// Passthrough reports whether the channel has no add/drop port
// (the C-band whole-spectrum entry on CzechLight devices).
func (c Channel) Passthrough() bool {
	return c.Port == ""
}

// Equal reports whether two channels carry the same configuration.
// Passthrough channels compare by name only.
func (c Channel) Equal(other Channel) bool {
	if c.Passthrough() || other.Passthrough() {
		return c.Name == other.Name && c.Port == other.Port
	}
	return c.Name == other.Name &&
		c.Port == other.Port &&
		c.Attenuation == other.Attenuation &&
		c.SpanGHz == other.SpanGHz &&
		c.Description == other.Description
}

// String renders a one-line channel summary for logs and previews.
func (c Channel) String() string {
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("%.3fTHz", c.CenterTHz)
	}
	if c.Passthrough() {
		return fmt.Sprintf("%s (passthrough)", name)
	}
	return fmt.Sprintf("%s port %s att %.1fdB span %.0fGHz", name, c.Port, c.Attenuation, c.SpanGHz)
}

// SortKey orders channels by plan name, falling back to the identity key
// for unresolved channels so ordering stays deterministic.
func (c Channel) SortKey() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Key().String()
}
