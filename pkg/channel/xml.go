package channel

import (
	"encoding/xml"
	"fmt"
	"sort"
)

// Namespace is the CzechLight ROADM device YANG namespace carried by the
// channel-plan and media-channels documents.
const Namespace = "http://czechlight.cesnet.cz/yang/czechlight-roadm-device"

// netconfBaseNS wraps edit-config payloads.
const netconfBaseNS = "urn:ietf:params:xml:ns:netconf:base:1.0"

// endpointXML is the add or drop side of a media channel.
type endpointXML struct {
	Port        string  `xml:"port"`
	Attenuation float64 `xml:"attenuation"`
}

// mediaChannelXML is one media-channels list entry as the device carries it.
type mediaChannelXML struct {
	XMLName     xml.Name     `xml:"media-channels"`
	Xmlns       string       `xml:"xmlns,attr,omitempty"`
	Name        string       `xml:"channel"`
	Add         *endpointXML `xml:"add,omitempty"`
	Drop        *endpointXML `xml:"drop,omitempty"`
	Description string       `xml:"description,omitempty"`
}

// ParsePlan decodes a channel-plan document fetched from the device.
// The document root is the get reply's data element.
func ParsePlan(doc []byte) (*Plan, error) {
	var parsed struct {
		Channels []struct {
			Name  string `xml:"name"`
			Lower int64  `xml:"lower-frequency"`
			Upper int64  `xml:"upper-frequency"`
		} `xml:"channel-plan>channel"`
	}
	if err := xml.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("parsing channel plan: %w", err)
	}
	if len(parsed.Channels) == 0 {
		return nil, fmt.Errorf("parsing channel plan: no channel entries")
	}

	entries := make([]PlanEntry, 0, len(parsed.Channels))
	for _, c := range parsed.Channels {
		entries = append(entries, PlanEntry{Name: c.Name, LowerMHz: c.Lower, UpperMHz: c.Upper})
	}
	return NewPlan(entries), nil
}

// ParseMediaChannels decodes a media-channels document fetched from the
// device and resolves every entry against the plan. A channel with neither
// add nor drop is a passthrough entry; any other channel must carry both,
// with matching ports and attenuations.
func ParseMediaChannels(doc []byte, plan *Plan) ([]Channel, error) {
	var parsed struct {
		Channels []mediaChannelXML `xml:"media-channels"`
	}
	if err := xml.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("parsing media channels: %w", err)
	}

	channels := make([]Channel, 0, len(parsed.Channels))
	for _, m := range parsed.Channels {
		ch := Channel{Name: m.Name, Description: m.Description}

		switch {
		case m.Add == nil && m.Drop == nil:
			// passthrough, nothing to copy

		case m.Add == nil || m.Drop == nil:
			return nil, fmt.Errorf("media channel %s: add or drop endpoint is missing", m.Name)

		default:
			if m.Add.Port != m.Drop.Port {
				return nil, fmt.Errorf("media channel %s: add port %s and drop port %s differ",
					m.Name, m.Add.Port, m.Drop.Port)
			}
			if m.Add.Attenuation != m.Drop.Attenuation {
				return nil, fmt.Errorf("media channel %s: add attenuation %g and drop attenuation %g differ",
					m.Name, m.Add.Attenuation, m.Drop.Attenuation)
			}
			ch.Port = m.Add.Port
			ch.Attenuation = m.Add.Attenuation
		}

		resolved, err := plan.ResolveName(ch)
		if err != nil {
			return nil, err
		}
		channels = append(channels, resolved)
	}
	return channels, nil
}

// BuildConfig renders channels as an edit-config payload. Channels are
// emitted in name order; passthrough channels carry no add/drop endpoints.
func BuildConfig(channels []Channel) ([]byte, error) {
	doc := struct {
		XMLName  xml.Name `xml:"config"`
		Xmlns    string   `xml:"xmlns,attr"`
		Channels []mediaChannelXML
	}{Xmlns: netconfBaseNS}

	sorted := make([]Channel, len(channels))
	copy(sorted, channels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SortKey() < sorted[j].SortKey() })

	for _, ch := range sorted {
		entry := mediaChannelXML{
			Xmlns:       Namespace,
			Name:        ch.Name,
			Description: ch.Description,
		}
		if !ch.Passthrough() {
			entry.Add = &endpointXML{Port: ch.Port, Attenuation: ch.Attenuation}
			entry.Drop = &endpointXML{Port: ch.Port, Attenuation: ch.Attenuation}
		}
		doc.Channels = append(doc.Channels, entry)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("building config: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
