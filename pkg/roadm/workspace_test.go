package roadm

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspacePaths(t *testing.T) {
	w := NewWorkspace("/work")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"channel plan", w.ChannelPlanPath("roadm-prague"), "/work/data/roadm-prague_channel_plan.xml"},
		{"media channels", w.MediaChannelsPath("roadm-prague"), "/work/data/roadm-prague_media_channels.xml"},
		{"config", w.ConfigPath("roadm-prague"), "/work/data/roadm-prague.xml"},
		{"backup", w.BackupPath("roadm-prague"), "/work/backup/roadm-prague_backup.xml"},
		{"checkup root", w.CheckupRoot(), "/work/checkup"},
		{"inventory", w.InventoryPath(), "/work/inventory.yaml"},
		{"audit log", w.AuditLogPath(), "/work/audit.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestWorkspaceDefaultsToCurrentDir(t *testing.T) {
	if got := NewWorkspace("").Root(); got != "." {
		t.Errorf("Root() = %q, want %q", got, ".")
	}
}

func TestWorkspaceWriteRead(t *testing.T) {
	w := NewWorkspace(t.TempDir())

	plan := []byte("<data>plan</data>")
	if err := w.WriteChannelPlan("roadm-prague", plan); err != nil {
		t.Fatalf("WriteChannelPlan: %v", err)
	}
	got, err := w.ReadChannelPlan("roadm-prague")
	if err != nil {
		t.Fatalf("ReadChannelPlan: %v", err)
	}
	if string(got) != string(plan) {
		t.Errorf("ReadChannelPlan = %q, want %q", got, plan)
	}

	media := []byte("<data>media</data>")
	if err := w.WriteMediaChannels("roadm-prague", media); err != nil {
		t.Fatalf("WriteMediaChannels: %v", err)
	}
	got, err = w.ReadMediaChannels("roadm-prague")
	if err != nil {
		t.Fatalf("ReadMediaChannels: %v", err)
	}
	if string(got) != string(media) {
		t.Errorf("ReadMediaChannels = %q, want %q", got, media)
	}
}

func TestWorkspaceCreatesDirsOnDemand(t *testing.T) {
	root := filepath.Join(t.TempDir(), "run1")
	w := NewWorkspace(root)

	if err := w.WriteBackup("roadm-prague", []byte("<data/>")); err != nil {
		t.Fatalf("WriteBackup: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "backup", "roadm-prague_backup.xml")); err != nil {
		t.Errorf("backup file not created: %v", err)
	}

	if err := w.WriteConfig("roadm-prague", []byte("<config/>")); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "data", "roadm-prague.xml")); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestWorkspaceEnsureRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "workspace")
	w := NewWorkspace(root)

	if err := w.EnsureRoot(); err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("workspace root not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("workspace root is not a directory")
	}
}

func TestWorkspaceReadMissingState(t *testing.T) {
	w := NewWorkspace(t.TempDir())

	if _, err := w.ReadChannelPlan("roadm-prague"); !os.IsNotExist(err) {
		t.Errorf("ReadChannelPlan on empty workspace = %v, want IsNotExist", err)
	}
}
