// Package roadm drives the device provisioning pipeline: fetch the live
// channel-plan and media-channels documents, diff them against the desired
// configuration, write checkup documents for operator review, and apply the
// final media-channel document over NETCONF.
package roadm

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/roadm-network/roadmctl/pkg/audit"
	"github.com/roadm-network/roadmctl/pkg/channel"
	"github.com/roadm-network/roadmctl/pkg/checkup"
	"github.com/roadm-network/roadmctl/pkg/diff"
	"github.com/roadm-network/roadmctl/pkg/spec"
	"github.com/roadm-network/roadmctl/pkg/util"
)

// Session is one device conversation. netconf.Client satisfies it; tests
// substitute fakes.
type Session interface {
	ChannelPlan() ([]byte, error)
	MediaChannels() ([]byte, error)
	RunningConfig() ([]byte, error)
	EditConfig(mode string, config []byte) error
	Close() error
}

// Dialer opens a session to a device.
type Dialer func(spec.Device) (Session, error)

// Per-device run outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeDryRun   = "dry-run"
	OutcomeDeclined = "declined"
	OutcomePending  = "pending"
	OutcomeFailed   = "failed"
)

// Result is how one device's run ended.
type Result struct {
	Device     string
	Outcome    string
	Changes    *diff.ChangeSet
	CheckupDir string
	Duration   time.Duration
	Err        error
}

// Failed reports whether the device run ended in an error.
func (r *Result) Failed() bool {
	return r.Outcome == OutcomeFailed
}

func (r *Result) fail(err error) *Result {
	r.Outcome = OutcomeFailed
	r.Err = err
	return r
}

// Options configures a Runner.
type Options struct {
	// Execute enables the apply stage. When false every device run is a
	// dry run that stops after writing the checkup documents.
	Execute bool

	// Confirmer gates the apply stage on devices with validate set. A nil
	// Confirmer leaves those devices pending instead of applying.
	Confirmer checkup.Confirmer

	// User overrides the audit event user. Defaults to the OS user.
	User string
}

// Runner drives the pipeline for the devices of a loaded configuration,
// one device at a time. Devices are independent: a failure on one never
// disturbs another, and apply-stage failures leave the checkup documents
// already written on disk.
type Runner struct {
	cfg       *spec.Config
	ws        *Workspace
	dial      Dialer
	confirmer checkup.Confirmer
	execute   bool
	user      string
}

// NewRunner creates a runner over a loaded configuration.
func NewRunner(cfg *spec.Config, ws *Workspace, dial Dialer, opts Options) *Runner {
	username := opts.User
	if username == "" {
		username = "unknown"
		if u, err := user.Current(); err == nil && u.Username != "" {
			username = u.Username
		}
	}
	return &Runner{
		cfg:       cfg,
		ws:        ws,
		dial:      dial,
		confirmer: opts.Confirmer,
		execute:   opts.Execute,
		user:      username,
	}
}

// Workspace returns the workspace the runner writes into.
func (r *Runner) Workspace() *Workspace {
	return r.ws
}

// RunDevice executes the full pipeline for one device: fetch, diff, checkup,
// confirmation gate, backup, apply. Every run records an audit event. Errors
// are captured in the Result so a bad device never aborts a multi-device run.
func (r *Runner) RunDevice(dev spec.Device) *Result {
	start := time.Now()
	res := &Result{Device: dev.Name}

	if err := r.fetch(dev); err != nil {
		return r.finish(dev, res.fail(err), start)
	}

	cs, err := r.computeDiff(dev)
	if err != nil {
		return r.finish(dev, res.fail(err), start)
	}
	res.Changes = cs

	dir, err := r.report(cs)
	if err != nil {
		return r.finish(dev, res.fail(err), start)
	}
	res.CheckupDir = dir

	if !r.execute {
		res.Outcome = OutcomeDryRun
		return r.finish(dev, res, start)
	}

	if dev.Validate {
		if r.confirmer == nil {
			util.WithDevice(dev.Name).Info("Confirmation pending: device requires validation")
			res.Outcome = OutcomePending
			return r.finish(dev, res, start)
		}
		ok, err := r.confirmer.Confirm(cs)
		if err != nil {
			return r.finish(dev, res.fail(err), start)
		}
		if !ok {
			util.WithDevice(dev.Name).Info("Changes declined by operator")
			res.Outcome = OutcomeDeclined
			return r.finish(dev, res, start)
		}
	}

	if err := r.apply(dev, cs); err != nil {
		return r.finish(dev, res.fail(err), start)
	}

	res.Outcome = OutcomeApplied
	return r.finish(dev, res, start)
}

// finish stamps the result duration and records the run's audit event.
func (r *Runner) finish(dev spec.Device, res *Result, start time.Time) *Result {
	res.Duration = time.Since(start)

	event := audit.NewEvent(r.user, dev.Name, audit.OpApply).
		WithMode(dev.Mode).
		WithOutcome(res.Outcome).
		WithExecuteMode(r.execute).
		WithDuration(res.Duration)
	if res.Changes != nil {
		event = event.WithCounts(res.Changes.Counts())
	}
	r.logEvent(event, res.Err)
	return res
}

// Fetch retrieves and stores a device's channel-plan and media-channels
// documents under data/.
func (r *Runner) Fetch(dev spec.Device) error {
	start := time.Now()
	err := r.fetch(dev)
	r.logEvent(audit.NewEvent(r.user, dev.Name, audit.OpFetch).
		WithDuration(time.Since(start)), err)
	return err
}

// Diff computes a device's changeset from previously fetched state and
// writes its checkup documents. No network activity: run Fetch first.
func (r *Runner) Diff(dev spec.Device) (*diff.ChangeSet, string, error) {
	start := time.Now()

	cs, err := r.computeDiff(dev)
	var dir string
	if err == nil {
		dir, err = r.report(cs)
	}

	event := audit.NewEvent(r.user, dev.Name, audit.OpDiff).
		WithMode(dev.Mode).
		WithDuration(time.Since(start))
	if cs != nil {
		event = event.WithCounts(cs.Counts())
	}
	r.logEvent(event, err)

	if err != nil {
		return nil, "", err
	}
	return cs, dir, nil
}

// Check dials a device to verify that a NETCONF session can be established.
func (r *Runner) Check(dev spec.Device) error {
	start := time.Now()
	sess, err := r.dial(dev)
	if err == nil {
		sess.Close()
	}
	r.logEvent(audit.NewEvent(r.user, dev.Name, audit.OpCheck).
		WithDuration(time.Since(start)), err)
	return err
}

func (r *Runner) logEvent(event *audit.Event, err error) {
	if err != nil {
		audit.Log(event.WithError(err))
		return
	}
	audit.Log(event.WithSuccess())
}

func (r *Runner) fetch(dev spec.Device) error {
	sess, err := r.dial(dev)
	if err != nil {
		return err
	}
	defer sess.Close()

	plan, err := sess.ChannelPlan()
	if err != nil {
		return err
	}
	if err := r.ws.WriteChannelPlan(dev.Name, plan); err != nil {
		return fmt.Errorf("storing channel plan: %w", err)
	}

	media, err := sess.MediaChannels()
	if err != nil {
		return err
	}
	if err := r.ws.WriteMediaChannels(dev.Name, media); err != nil {
		return fmt.Errorf("storing media channels: %w", err)
	}

	util.WithDevice(dev.Name).Info("Fetched channel plan and media channels")
	return nil
}

func (r *Runner) computeDiff(dev spec.Device) (*diff.ChangeSet, error) {
	planXML, err := r.ws.ReadChannelPlan(dev.Name)
	if err != nil {
		return nil, fetchedStateErr(dev.Name, "channel plan", err)
	}
	mediaXML, err := r.ws.ReadMediaChannels(dev.Name)
	if err != nil {
		return nil, fetchedStateErr(dev.Name, "media channels", err)
	}

	plan, err := channel.ParsePlan(planXML)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", r.ws.ChannelPlanPath(dev.Name), err)
	}
	current, err := channel.ParseMediaChannels(mediaXML, plan)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", r.ws.MediaChannelsPath(dev.Name), err)
	}

	desired, err := r.desired(dev, plan)
	if err != nil {
		return nil, err
	}

	cs, err := diff.Compute(dev.Name, dev.Mode, desired, current)
	if err != nil {
		return nil, err
	}
	added, removed, changed := cs.Counts()
	util.WithDevice(dev.Name).Infof("Diff: %d added, %d removed, %d changed", added, removed, changed)
	return cs, nil
}

func fetchedStateErr(device, what string, err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("no fetched %s for %s: run fetch first", what, device)
	}
	return fmt.Errorf("reading fetched %s for %s: %w", what, device, err)
}

// desired resolves the device's configured channels against its channel plan.
func (r *Runner) desired(dev spec.Device, plan *channel.Plan) ([]channel.Channel, error) {
	specs := r.cfg.Channels[dev.Name]
	channels := make([]channel.Channel, 0, len(specs))
	for _, s := range specs {
		ch, err := plan.Resolve(s.Channel())
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

func (r *Runner) report(cs *diff.ChangeSet) (string, error) {
	dir, err := checkup.NewReporter(r.ws.CheckupRoot()).Write(cs)
	if err != nil {
		return "", fmt.Errorf("writing checkup documents: %w", err)
	}
	util.WithDevice(cs.Device).Infof("Checkup documents written to %s", dir)
	return dir, nil
}

// apply backs up the running configuration, persists the final document,
// and pushes it with the device's merge or replace semantics.
func (r *Runner) apply(dev spec.Device, cs *diff.ChangeSet) error {
	log := util.WithDevice(dev.Name)

	sess, err := r.dial(dev)
	if err != nil {
		return err
	}
	defer sess.Close()

	running, err := sess.RunningConfig()
	if err != nil {
		return err
	}
	if err := r.ws.WriteBackup(dev.Name, running); err != nil {
		return fmt.Errorf("storing backup: %w", err)
	}
	log.Infof("Backed up running configuration to %s", r.ws.BackupPath(dev.Name))

	config, err := channel.BuildConfig(cs.Final)
	if err != nil {
		return err
	}
	if err := r.ws.WriteConfig(dev.Name, config); err != nil {
		return fmt.Errorf("storing configuration document: %w", err)
	}

	if err := sess.EditConfig(dev.Mode, config); err != nil {
		return err
	}
	log.Infof("Applied %d channels (%s mode)", len(cs.Final), dev.Mode)
	return nil
}
