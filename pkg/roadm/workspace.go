package roadm

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace directory names.
const (
	dataDirName    = "data"
	backupDirName  = "backup"
	checkupDirName = "checkup"

	// InventoryFileName is the inventory document at the workspace root.
	InventoryFileName = "inventory.yaml"

	// AuditLogName is the audit log at the workspace root.
	AuditLogName = "audit.log"
)

// Workspace is the on-disk layout of a run directory. Fetched device state
// lands under data/, pre-apply backups under backup/, and review documents
// under checkup/<device>/. Directories are created when first written to.
type Workspace struct {
	root string
}

// NewWorkspace returns a workspace rooted at dir. An empty dir means the
// current directory.
func NewWorkspace(dir string) *Workspace {
	if dir == "" {
		dir = "."
	}
	return &Workspace{root: dir}
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// EnsureRoot creates the workspace root if it does not exist.
func (w *Workspace) EnsureRoot() error {
	return os.MkdirAll(w.root, 0755)
}

// ChannelPlanPath returns where a device's fetched channel plan is stored.
func (w *Workspace) ChannelPlanPath(device string) string {
	return filepath.Join(w.root, dataDirName, device+"_channel_plan.xml")
}

// MediaChannelsPath returns where a device's fetched media-channels
// document is stored.
func (w *Workspace) MediaChannelsPath(device string) string {
	return filepath.Join(w.root, dataDirName, device+"_media_channels.xml")
}

// ConfigPath returns where a device's final configuration document is
// stored before it is pushed.
func (w *Workspace) ConfigPath(device string) string {
	return filepath.Join(w.root, dataDirName, device+".xml")
}

// BackupPath returns where a device's pre-apply running-configuration
// backup is stored.
func (w *Workspace) BackupPath(device string) string {
	return filepath.Join(w.root, backupDirName, device+"_backup.xml")
}

// CheckupRoot returns the directory the checkup reporter writes device
// subdirectories into.
func (w *Workspace) CheckupRoot() string {
	return filepath.Join(w.root, checkupDirName)
}

// InventoryPath returns the inventory document path.
func (w *Workspace) InventoryPath() string {
	return filepath.Join(w.root, InventoryFileName)
}

// AuditLogPath returns the audit log path.
func (w *Workspace) AuditLogPath() string {
	return filepath.Join(w.root, AuditLogName)
}

// WriteChannelPlan stores a device's fetched channel plan.
func (w *Workspace) WriteChannelPlan(device string, data []byte) error {
	return w.write(w.ChannelPlanPath(device), data)
}

// WriteMediaChannels stores a device's fetched media-channels document.
func (w *Workspace) WriteMediaChannels(device string, data []byte) error {
	return w.write(w.MediaChannelsPath(device), data)
}

// WriteConfig stores the final configuration document for a device.
func (w *Workspace) WriteConfig(device string, data []byte) error {
	return w.write(w.ConfigPath(device), data)
}

// WriteBackup stores the pre-apply running-configuration backup.
func (w *Workspace) WriteBackup(device string, data []byte) error {
	return w.write(w.BackupPath(device), data)
}

// ReadChannelPlan loads a previously fetched channel plan.
func (w *Workspace) ReadChannelPlan(device string) ([]byte, error) {
	return os.ReadFile(w.ChannelPlanPath(device))
}

// ReadMediaChannels loads a previously fetched media-channels document.
func (w *Workspace) ReadMediaChannels(device string) ([]byte, error) {
	return os.ReadFile(w.MediaChannelsPath(device))
}

func (w *Workspace) write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return os.WriteFile(path, data, 0644)
}
