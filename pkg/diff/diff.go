// Package diff classifies a device's desired channel list against its
// current state into added, removed and changed channels, and produces the
// final document the apply stage pushes.
package diff

import (
	"sort"
	"time"

	"github.com/roadm-network/roadmctl/pkg/channel"
	"github.com/roadm-network/roadmctl/pkg/spec"
	"github.com/roadm-network/roadmctl/pkg/util"
)

// Compute builds the ChangeSet for one device. Both channel lists must be
// resolved against the device's channel plan. A duplicate identity key on
// either side fails the whole computation; no partial ChangeSet is returned.
func Compute(device, mode string, desired, current []channel.Channel) (*ChangeSet, error) {
	if !spec.ValidMode(mode) {
		return nil, &util.ModeError{Device: device, Mode: mode}
	}

	desiredByKey, err := index(desired, "desired")
	if err != nil {
		return nil, err
	}
	currentByKey, err := index(current, "current")
	if err != nil {
		return nil, err
	}

	cs := &ChangeSet{Device: device, Mode: mode, Timestamp: time.Now()}

	for _, d := range desired {
		c, ok := currentByKey[d.Key()]
		switch {
		case !ok:
			cs.Added = append(cs.Added, d)
		case !d.Equal(c):
			cs.Changed = append(cs.Changed, Change{Old: c, New: d})
		}
		cs.Final = append(cs.Final, d)
	}

	for _, c := range current {
		if _, ok := desiredByKey[c.Key()]; ok {
			continue
		}
		cs.Removed = append(cs.Removed, c)
		if mode == spec.ModeMerge {
			cs.Final = append(cs.Final, c)
		}
	}

	sortChannels(cs.Added)
	sortChannels(cs.Removed)
	sortChannels(cs.Final)
	sort.Slice(cs.Changed, func(i, j int) bool {
		return cs.Changed[i].Old.SortKey() < cs.Changed[j].Old.SortKey()
	})

	return cs, nil
}

func index(channels []channel.Channel, scope string) (map[channel.Key]channel.Channel, error) {
	byKey := make(map[channel.Key]channel.Channel, len(channels))
	for _, c := range channels {
		key := c.Key()
		if _, ok := byKey[key]; ok {
			return nil, &util.DuplicateKeyError{Scope: scope, Key: key.String()}
		}
		byKey[key] = c
	}
	return byKey, nil
}

func sortChannels(channels []channel.Channel) {
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].SortKey() < channels[j].SortKey()
	})
}
