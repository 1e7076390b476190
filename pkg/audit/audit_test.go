package audit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEvent_New(t *testing.T) {
	event := NewEvent("alice", "roadm-prague", OpApply)

	if event.User != "alice" {
		t.Errorf("User = %q, want %q", event.User, "alice")
	}
	if event.Device != "roadm-prague" {
		t.Errorf("Device = %q, want %q", event.Device, "roadm-prague")
	}
	if event.Operation != OpApply {
		t.Errorf("Operation = %q, want %q", event.Operation, OpApply)
	}
	if event.ID == "" {
		t.Error("ID should not be empty")
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestEvent_Chaining(t *testing.T) {
	event := NewEvent("alice", "roadm-prague", OpApply).
		WithMode("merge").
		WithOutcome("applied").
		WithCounts(2, 1, 3).
		WithSuccess().
		WithDuration(time.Second).
		WithExecuteMode(true)

	if event.Mode != "merge" {
		t.Errorf("Mode = %q", event.Mode)
	}
	if event.Outcome != "applied" {
		t.Errorf("Outcome = %q", event.Outcome)
	}
	if event.Added != 2 || event.Removed != 1 || event.Changed != 3 {
		t.Errorf("counts = %d/%d/%d, want 2/1/3", event.Added, event.Removed, event.Changed)
	}
	if !event.Success {
		t.Error("Success should be true")
	}
	if event.Duration != time.Second {
		t.Errorf("Duration = %v", event.Duration)
	}
	if !event.ExecuteMode {
		t.Error("ExecuteMode should be true")
	}
	if event.DryRun {
		t.Error("DryRun should be false when ExecuteMode is true")
	}
}

func TestEvent_WithError(t *testing.T) {
	event := NewEvent("alice", "roadm-prague", OpApply).
		WithError(errors.New("edit-config rejected"))

	if event.Success {
		t.Error("Success should be false")
	}
	if event.Error != "edit-config rejected" {
		t.Errorf("Error = %q", event.Error)
	}

	event = NewEvent("alice", "roadm-prague", OpApply).WithError(nil)
	if event.Success {
		t.Error("Success should be false even with a nil error")
	}
	if event.Error != "" {
		t.Errorf("Error = %q, want empty", event.Error)
	}
}

func newTestLogger(t *testing.T) *FileLogger {
	t.Helper()
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "audit.log"), RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger
}

func TestFileLogger_LogAndQuery(t *testing.T) {
	logger := newTestLogger(t)

	events := []*Event{
		NewEvent("alice", "roadm-prague", OpApply).WithMode("merge").WithOutcome("applied").WithSuccess().WithExecuteMode(true),
		NewEvent("alice", "roadm-prague", OpApply).WithMode("merge").WithOutcome("failed").WithError(errors.New("boom")).WithExecuteMode(true),
		NewEvent("bob", "roadm-brno", OpFetch).WithMode("replace").WithOutcome("dry-run").WithSuccess(),
	}
	for _, e := range events {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	all, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Query(all) returned %d events, want 3", len(all))
	}
	if all[0].User != "bob" {
		t.Errorf("Query must return newest first, got %q", all[0].User)
	}

	recent, err := logger.Query(Filter{Limit: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(recent) != 1 || recent[0].Operation != OpFetch {
		t.Errorf("Limit must keep the most recent events, got %+v", recent)
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"by device", Filter{Device: "roadm-prague"}, 2},
		{"by user", Filter{User: "bob"}, 1},
		{"by operation", Filter{Operation: OpFetch}, 1},
		{"by mode", Filter{Mode: "merge"}, 2},
		{"by outcome", Filter{Outcome: "applied"}, 1},
		{"success only", Filter{SuccessOnly: true}, 2},
		{"failures only", Filter{FailureOnly: true}, 1},
		{"device and failure", Filter{Device: "roadm-prague", FailureOnly: true}, 1},
		{"no match", Filter{Device: "roadm-ostrava"}, 0},
		{"limit", Filter{Limit: 2}, 2},
		{"offset", Filter{Offset: 2}, 1},
		{"offset past end", Filter{Offset: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logger.Query(tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Query(%+v) returned %d events, want %d", tt.filter, len(got), tt.want)
			}
		})
	}
}

func TestFileLogger_TimeWindow(t *testing.T) {
	logger := newTestLogger(t)

	old := NewEvent("alice", "roadm-prague", OpApply)
	old.Timestamp = time.Now().Add(-2 * time.Hour)
	recent := NewEvent("alice", "roadm-prague", OpApply)

	for _, e := range []*Event{old, recent} {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	got, err := logger.Query(Filter{StartTime: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("StartTime filter returned %d events, want 1", len(got))
	}

	got, err = logger.Query(Filter{EndTime: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("EndTime filter returned %d events, want 1", len(got))
	}
}

func TestFileLogger_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	logger, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer logger.Close()

	if err := logger.Log(NewEvent("alice", "roadm-prague", OpApply)); err != nil {
		t.Fatalf("Log: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not json\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if err := logger.Log(NewEvent("bob", "roadm-brno", OpFetch)); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := logger.Query(Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Query returned %d events, want 2 (malformed line skipped)", len(got))
	}
}

func TestFileLogger_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.log")
	logger, err := NewFileLogger(path, RotationConfig{MaxSize: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer logger.Close()

	// every Log after the first exceeds MaxSize and forces a rotation
	for i := 0; i < 3; i++ {
		if err := logger.Log(NewEvent("alice", "roadm-prague", OpApply)); err != nil {
			t.Fatalf("Log #%d: %v", i, err)
		}
		time.Sleep(1100 * time.Millisecond)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := 0
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "audit.log.") {
			rotated++
		}
	}
	if rotated == 0 {
		t.Error("no rotated audit files found")
	}
	if rotated > 2 {
		t.Errorf("found %d rotated files, MaxBackups is 2", rotated)
	}
}

func TestDefaultLogger(t *testing.T) {
	// package-level Log/Query are no-ops before a logger is set
	if err := Log(NewEvent("alice", "roadm-prague", OpApply)); err != nil {
		t.Errorf("Log without a default logger = %v, want nil", err)
	}
	events, err := Query(Filter{})
	if err != nil || len(events) != 0 {
		t.Errorf("Query without a default logger = %v, %v", events, err)
	}

	logger := newTestLogger(t)
	SetDefaultLogger(logger)
	t.Cleanup(func() { SetDefaultLogger(nil) })

	if err := Log(NewEvent("alice", "roadm-prague", OpApply).WithSuccess()); err != nil {
		t.Fatalf("Log: %v", err)
	}
	events, err = Query(Filter{Device: "roadm-prague"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Query returned %d events, want 1", len(events))
	}
}
