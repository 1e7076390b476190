// Package checkup writes the per-device review documents for a computed
// change set and gates the apply stage behind operator confirmation.
package checkup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/roadm-network/roadmctl/pkg/channel"
	"github.com/roadm-network/roadmctl/pkg/diff"
)

// Review document names, one per change category.
const (
	AddedFile   = "added_channels.yaml"
	RemovedFile = "removed_channels.yaml"
	ChangedFile = "changed_channels.yaml"
	FinalFile   = "final_configuration.yaml"
)

const emptyCategory = "No channels in this category"

// Reporter writes review documents under a checkup root directory, one
// subdirectory per device.
type Reporter struct {
	dir string
}

// NewReporter returns a Reporter rooted at dir.
func NewReporter(dir string) *Reporter {
	return &Reporter{dir: dir}
}

// DeviceDir returns the review directory for a device.
func (r *Reporter) DeviceDir(device string) string {
	return filepath.Join(r.dir, device)
}

// Write renders the change set's four review documents and returns the
// directory they were written to.
func (r *Reporter) Write(cs *diff.ChangeSet) (string, error) {
	dir := r.DeviceDir(cs.Device)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating checkup directory: %w", err)
	}

	added, err := marshalChannels(cs.Added)
	if err != nil {
		return "", err
	}
	removed, err := marshalChannels(cs.Removed)
	if err != nil {
		return "", err
	}
	changed, err := marshalChanges(cs.Changed)
	if err != nil {
		return "", err
	}
	final, err := marshalChannels(cs.Final)
	if err != nil {
		return "", err
	}

	docs := map[string][]byte{
		AddedFile:   added,
		RemovedFile: removed,
		ChangedFile: changed,
		FinalFile:   final,
	}
	for file, doc := range docs {
		if err := os.WriteFile(filepath.Join(dir, file), doc, 0644); err != nil {
			return "", fmt.Errorf("writing %s: %w", file, err)
		}
	}
	return dir, nil
}

// marshalChannels renders a channel list as a YAML sequence, one blank line
// between entries. An empty list renders the placeholder document.
func marshalChannels(channels []channel.Channel) ([]byte, error) {
	items := make([]*yaml.Node, len(channels))
	for i, c := range channels {
		items[i] = channelNode(c)
	}
	return marshalItems(items)
}

// marshalChanges renders changed channels with every field present and
// differing fields shown as "old -> new".
func marshalChanges(changes []diff.Change) ([]byte, error) {
	items := make([]*yaml.Node, len(changes))
	for i, c := range changes {
		items[i] = changeNode(c)
	}
	return marshalItems(items)
}

func marshalItems(items []*yaml.Node) ([]byte, error) {
	if len(items) == 0 {
		return yaml.Marshal(emptyCategory)
	}

	var buf bytes.Buffer
	for i, item := range items {
		if i > 0 {
			buf.WriteByte('\n')
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{item}}
		doc, err := encodeNode(seq)
		if err != nil {
			return nil, err
		}
		buf.Write(doc)
	}
	return buf.Bytes(), nil
}

func encodeNode(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("rendering checkup document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("rendering checkup document: %w", err)
	}
	return buf.Bytes(), nil
}

// channelNode renders one channel in the review field order. Passthrough
// channels carry no port or attenuation, shown as nulls.
func channelNode(c channel.Channel) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	appendPair(node, "name", strNode(c.Name))
	if c.Passthrough() {
		appendPair(node, "leaf_port", nullNode())
		appendPair(node, "attenuation", nullNode())
	} else {
		appendPair(node, "leaf_port", strNode(c.Port))
		appendPair(node, "attenuation", floatNode(c.Attenuation))
	}
	appendPair(node, "frequency_span", withComment(floatNode(c.SpanGHz), "GHz"))
	appendPair(node, "frequency_center", withComment(floatNode(c.CenterTHz), "THz"))
	if c.Description == "" {
		appendPair(node, "description", nullNode())
	} else {
		appendPair(node, "description", strNode(c.Description))
	}
	return node
}

// changeNode renders a changed channel. Unchanged fields carry the desired
// value; changed fields render both sides.
func changeNode(c diff.Change) *yaml.Node {
	deltas := make(map[string]diff.FieldDelta)
	for _, d := range c.Deltas() {
		deltas[d.Field] = d
	}
	pick := func(field string, current *yaml.Node) *yaml.Node {
		d, ok := deltas[field]
		if !ok {
			return current
		}
		from, to := d.Old, d.New
		if from == "" {
			from = "null"
		}
		if to == "" {
			to = "null"
		}
		return strNode(fmt.Sprintf("%s -> %s", from, to))
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	appendPair(node, "name", pick("name", strNode(c.New.Name)))
	appendPair(node, "leaf_port", strNode(c.New.Port))
	appendPair(node, "attenuation", pick("attenuation", floatNode(c.New.Attenuation)))
	appendPair(node, "frequency_span", withComment(pick("frequency_span", floatNode(c.New.SpanGHz)), "GHz"))
	appendPair(node, "frequency_center", withComment(floatNode(c.New.CenterTHz), "THz"))

	desc := nullNode()
	if c.New.Description != "" {
		desc = strNode(c.New.Description)
	}
	appendPair(node, "description", pick("description", desc))
	return node
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key), value)
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func floatNode(v float64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func withComment(node *yaml.Node, comment string) *yaml.Node {
	node.LineComment = comment
	return node
}
