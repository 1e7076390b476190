package diff

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roadm-network/roadmctl/pkg/channel"
)

// FieldDelta is one attribute-level difference within a changed channel.
type FieldDelta struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// Change pairs the device's current channel with the desired channel that
// replaces it.
type Change struct {
	Old channel.Channel `json:"old"`
	New channel.Channel `json:"new"`
}

// Deltas lists the fields that differ between Old and New. Port and center
// frequency are the identity key, so they never appear here.
func (c Change) Deltas() []FieldDelta {
	var deltas []FieldDelta
	add := func(field, from, to string) {
		if from != to {
			deltas = append(deltas, FieldDelta{Field: field, Old: from, New: to})
		}
	}
	add("name", c.Old.Name, c.New.Name)
	add("attenuation", formatFloat(c.Old.Attenuation), formatFloat(c.New.Attenuation))
	add("frequency_span", formatFloat(c.Old.SpanGHz), formatFloat(c.New.SpanGHz))
	add("description", c.Old.Description, c.New.Description)
	return deltas
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ChangeSet classifies one device's desired channels against its current
// state. Final is the complete document the apply stage pushes: under merge
// it retains current-only channels, under replace it drops them. Removed is
// reported in both modes.
type ChangeSet struct {
	Device    string            `json:"device"`
	Mode      string            `json:"mode"`
	Timestamp time.Time         `json:"timestamp"`
	Added     []channel.Channel `json:"added"`
	Removed   []channel.Channel `json:"removed"`
	Changed   []Change          `json:"changed"`
	Final     []channel.Channel `json:"final"`
}

// IsEmpty returns true if the desired and current state already agree.
func (cs *ChangeSet) IsEmpty() bool {
	return len(cs.Added) == 0 && len(cs.Removed) == 0 && len(cs.Changed) == 0
}

// Counts returns the number of added, removed and changed channels.
func (cs *ChangeSet) Counts() (added, removed, changed int) {
	return len(cs.Added), len(cs.Removed), len(cs.Changed)
}

// String returns a human-readable representation of the changes. The
// result always ends with a newline so callers can print it as a block.
func (cs *ChangeSet) String() string {
	if cs.IsEmpty() {
		return "  No changes\n"
	}

	var sb strings.Builder
	for _, ch := range cs.Added {
		sb.WriteString(fmt.Sprintf("  [ADD] %s\n", ch))
	}
	for _, c := range cs.Changed {
		parts := make([]string, 0, 4)
		for _, d := range c.Deltas() {
			parts = append(parts, fmt.Sprintf("%s %s -> %s", d.Field, d.Old, d.New))
		}
		sb.WriteString(fmt.Sprintf("  [MOD] %s: %s\n", c.Old.Name, strings.Join(parts, ", ")))
	}
	for _, ch := range cs.Removed {
		sb.WriteString(fmt.Sprintf("  [DEL] %s\n", ch))
	}

	return sb.String()
}

// Preview returns a formatted preview of the changes.
func (cs *ChangeSet) Preview() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Device: %s\n", cs.Device))
	sb.WriteString(fmt.Sprintf("Mode: %s\n", cs.Mode))
	sb.WriteString(fmt.Sprintf("Changes:\n%s", cs.String()))
	return sb.String()
}
