package netconf

import (
	"fmt"
	"strings"

	"github.com/Juniper/go-netconf/netconf"

	"github.com/roadm-network/roadmctl/pkg/channel"
)

const baseNS = "urn:ietf:params:xml:ns:netconf:base:1.0"

// channelPlanRPC retrieves the channel plan. The plan is state data, so it
// comes from <get> rather than <get-config>.
func channelPlanRPC() string {
	return fmt.Sprintf(`<get xmlns=%q>
  <filter type="subtree">
    <channel-plan xmlns=%q/>
  </filter>
</get>`, baseNS, channel.Namespace)
}

// mediaChannelsRPC retrieves the configured media channels from the running
// datastore.
func mediaChannelsRPC() string {
	return fmt.Sprintf(`<get-config xmlns=%q>
  <source><running/></source>
  <filter type="subtree">
    <media-channels xmlns=%q/>
  </filter>
</get-config>`, baseNS, channel.Namespace)
}

// runningConfigRPC retrieves the complete running datastore, used for the
// pre-apply backup.
func runningConfigRPC() string {
	return fmt.Sprintf(`<get-config xmlns=%q>
  <source><running/></source>
</get-config>`, baseNS)
}

// editConfigRPC pushes a <config> document to the running datastore. The
// default operation carries the device's merge/replace mode.
func editConfigRPC(mode string, config []byte) string {
	doc := strings.TrimPrefix(strings.TrimSpace(string(config)), `<?xml version="1.0" encoding="UTF-8"?>`)
	return fmt.Sprintf(`<edit-config xmlns=%q>
  <target><running/></target>
  <default-operation>%s</default-operation>
  %s
</edit-config>`, baseNS, mode, strings.TrimSpace(doc))
}

func formatRPCErrors(errs []netconf.RPCError) string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Tag, strings.TrimSpace(e.Message)))
	}
	return strings.Join(lines, "; ")
}
