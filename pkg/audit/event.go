// Package audit provides audit logging for device configuration runs.
package audit

import (
	"fmt"
	"time"
)

// Operation names recorded by the pipeline
const (
	OpFetch = "fetch"
	OpDiff  = "diff"
	OpApply = "apply"
	OpCheck = "check"
)

// Event records one device's trip through the pipeline
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Device    string    `json:"device"`
	Operation string    `json:"operation"`

	// Mode is the device's merge/replace setting.
	Mode string `json:"mode,omitempty"`

	// Outcome is the runner's verdict: applied, dry-run, declined,
	// pending or failed.
	Outcome string `json:"outcome,omitempty"`

	// Channel counts from the computed change set.
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Changed int `json:"changed"`

	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
	ExecuteMode bool          `json:"execute_mode"` // true if -x was used
	DryRun      bool          `json:"dry_run"`
	Duration    time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	Device      string
	User        string
	Operation   string
	Mode        string
	Outcome     string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates a new audit event
func NewEvent(user, device, operation string) *Event {
	return &Event{
		ID:        generateID(),
		Timestamp: time.Now(),
		User:      user,
		Device:    device,
		Operation: operation,
	}
}

// WithMode records the device's configuration mode
func (e *Event) WithMode(mode string) *Event {
	e.Mode = mode
	return e
}

// WithOutcome records the runner's verdict
func (e *Event) WithOutcome(outcome string) *Event {
	e.Outcome = outcome
	return e
}

// WithCounts records the change set sizes
func (e *Event) WithCounts(added, removed, changed int) *Event {
	e.Added = added
	e.Removed = removed
	e.Changed = changed
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets the operation duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

// WithExecuteMode marks if execute mode was used
func (e *Event) WithExecuteMode(execute bool) *Event {
	e.ExecuteMode = execute
	e.DryRun = !execute
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
