// Package netconf is the NETCONF transport for CzechLight ROADM devices:
// it fetches the channel plan and media channels, backs up the running
// datastore and pushes edit-config documents.
package netconf

import (
	"errors"
	"time"

	"github.com/Juniper/go-netconf/netconf"
	"golang.org/x/crypto/ssh"

	"github.com/roadm-network/roadmctl/pkg/settings"
	"github.com/roadm-network/roadmctl/pkg/spec"
	"github.com/roadm-network/roadmctl/pkg/util"
)

// Options carries dial parameters that come from settings rather than the
// device record.
type Options struct {
	// Port is used when the device record does not name one. Zero means
	// the standard NETCONF port.
	Port int

	// Timeout bounds session establishment. Zero means the default.
	Timeout time.Duration
}

// Client is a NETCONF session with one device.
type Client struct {
	device  string
	session *netconf.Session
}

// Dial opens a NETCONF-over-SSH session with the device. ROADM devices in
// the field carry self-signed host keys, so host key checking is off, as it
// was in the tooling this replaces.
func Dial(d spec.Device, opts Options) (*Client, error) {
	if opts.Port == 0 {
		opts.Port = settings.DefaultPort
	}
	if opts.Timeout <= 0 {
		opts.Timeout = settings.DefaultTimeoutSeconds * time.Second
	}

	sshConfig := &ssh.ClientConfig{
		User:            d.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(d.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         opts.Timeout,
	}

	addr := d.Addr(opts.Port)
	session, err := netconf.DialSSH(addr, sshConfig)
	if err != nil {
		return nil, util.NewTransportError(d.Name, "dial "+addr, err)
	}
	util.WithDevice(d.Name).Debugf("netconf session established with %s", addr)
	return &Client{device: d.Name, session: session}, nil
}

// Device returns the device name the client is connected to.
func (c *Client) Device() string {
	return c.device
}

// Close tears down the session.
func (c *Client) Close() error {
	if c.session == nil {
		return nil
	}
	return c.session.Close()
}

// ChannelPlan fetches the device's channel plan document.
func (c *Client) ChannelPlan() ([]byte, error) {
	return c.exec("get channel-plan", channelPlanRPC())
}

// MediaChannels fetches the configured media channels from running.
func (c *Client) MediaChannels() ([]byte, error) {
	return c.exec("get-config media-channels", mediaChannelsRPC())
}

// RunningConfig fetches the complete running datastore for backup.
func (c *Client) RunningConfig() ([]byte, error) {
	return c.exec("get-config running", runningConfigRPC())
}

// EditConfig pushes a config document to the running datastore under a
// datastore lock. mode becomes the edit's default operation.
func (c *Client) EditConfig(mode string, config []byte) error {
	if _, err := c.exec("lock running", string(netconf.MethodLock("running"))); err != nil {
		return err
	}
	_, editErr := c.exec("edit-config", editConfigRPC(mode, config))
	if _, err := c.exec("unlock running", string(netconf.MethodUnlock("running"))); err != nil && editErr == nil {
		return err
	}
	return editErr
}

// exec runs one RPC and surfaces RPC-level errors as transport errors with
// device and operation context.
func (c *Client) exec(op, rpc string) ([]byte, error) {
	if c.session == nil {
		return nil, util.NewTransportError(c.device, op, util.ErrNotConnected)
	}

	reply, err := c.session.Exec(netconf.RawMethod(rpc))
	if err != nil {
		return nil, util.NewTransportError(c.device, op, err)
	}
	if len(reply.Errors) > 0 {
		return nil, util.NewTransportError(c.device, op, errors.New(formatRPCErrors(reply.Errors)))
	}
	util.WithDevice(c.device).Debugf("%s ok (message-id %s)", op, reply.MessageID)
	return []byte(reply.Data), nil
}
