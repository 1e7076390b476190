package netconf

import (
	"errors"
	"strings"
	"testing"

	"github.com/roadm-network/roadmctl/pkg/util"
)

func TestClientNotConnected(t *testing.T) {
	c := &Client{device: "roadm-prague"}

	_, err := c.ChannelPlan()
	if !errors.Is(err, util.ErrTransport) {
		t.Errorf("ChannelPlan() on a dead client = %v, want a transport error", err)
	}
	if !strings.Contains(err.Error(), util.ErrNotConnected.Error()) {
		t.Errorf("error should say the client is not connected: %v", err)
	}
	if _, err := c.MediaChannels(); !errors.Is(err, util.ErrTransport) {
		t.Errorf("MediaChannels() should surface a transport error, got %v", err)
	}
	if err := c.EditConfig("merge", nil); err == nil {
		t.Error("EditConfig() on a dead client should fail")
	} else if !strings.Contains(err.Error(), "roadm-prague") {
		t.Errorf("error should name the device: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close() on a dead client = %v, want nil", err)
	}
}

func TestClientDevice(t *testing.T) {
	c := &Client{device: "roadm-brno"}
	if got := c.Device(); got != "roadm-brno" {
		t.Errorf("Device() = %q", got)
	}
}
