//go:build integration

package netconf_test

import (
	"testing"

	"github.com/roadm-network/roadmctl/internal/testutil"
	"github.com/roadm-network/roadmctl/pkg/channel"
	"github.com/roadm-network/roadmctl/pkg/netconf"
)

// TestFetchFromDevice exercises the read-only RPCs against a real device.
// It never writes configuration.
func TestFetchFromDevice(t *testing.T) {
	device := testutil.SkipIfNoROADM(t)

	client, err := netconf.Dial(device, netconf.Options{})
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer client.Close()

	planDoc, err := client.ChannelPlan()
	if err != nil {
		t.Fatalf("ChannelPlan() error: %v", err)
	}
	plan, err := channel.ParsePlan(planDoc)
	if err != nil {
		t.Fatalf("device channel plan does not parse: %v", err)
	}
	if plan.Len() == 0 {
		t.Error("device channel plan is empty")
	}

	mediaDoc, err := client.MediaChannels()
	if err != nil {
		t.Fatalf("MediaChannels() error: %v", err)
	}
	channels, err := channel.ParseMediaChannels(mediaDoc, plan)
	if err != nil {
		t.Fatalf("device media channels do not parse: %v", err)
	}
	t.Logf("device carries %d media channels", len(channels))

	running, err := client.RunningConfig()
	if err != nil {
		t.Fatalf("RunningConfig() error: %v", err)
	}
	if len(running) == 0 {
		t.Error("running config is empty")
	}
}
