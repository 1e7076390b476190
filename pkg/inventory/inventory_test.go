package inventory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/roadm-network/roadmctl/pkg/spec"
)

func testDevices() []spec.Device {
	return []spec.Device{
		{Name: "roadm-prague", IPAddress: "10.0.10.1", Username: "admin", Password: "czechlight", Mode: "merge"},
		{Name: "roadm-brno", IPAddress: "10.0.10.2", Username: "operator", Password: "secret", Mode: "replace", Port: 8300},
	}
}

func TestBuild(t *testing.T) {
	inv := Build(testDevices())

	if len(inv.All.Hosts) != 2 {
		t.Fatalf("got %d hosts, want 2", len(inv.All.Hosts))
	}

	prague, ok := inv.All.Hosts["roadm-prague"]
	if !ok {
		t.Fatal("roadm-prague missing from inventory")
	}
	if prague.Host != "10.0.10.1" || prague.User != "admin" || prague.Password != "czechlight" {
		t.Errorf("roadm-prague = %+v", prague)
	}
	if prague.Port != 0 {
		t.Errorf("roadm-prague port = %d, want 0 (default)", prague.Port)
	}

	brno := inv.All.Hosts["roadm-brno"]
	if brno.Port != 8300 {
		t.Errorf("roadm-brno port = %d, want 8300", brno.Port)
	}
}

func TestMarshal(t *testing.T) {
	doc, err := Build(testDevices()).Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	out := string(doc)

	var parsed struct {
		All struct {
			Hosts map[string]map[string]interface{} `yaml:"hosts"`
		} `yaml:"all"`
	}
	if err := yaml.Unmarshal(doc, &parsed); err != nil {
		t.Fatalf("inventory is not valid YAML: %v", err)
	}

	prague := parsed.All.Hosts["roadm-prague"]
	if prague["ansible_host"] != "10.0.10.1" {
		t.Errorf("ansible_host = %v", prague["ansible_host"])
	}
	if prague["ansible_user"] != "admin" {
		t.Errorf("ansible_user = %v", prague["ansible_user"])
	}
	if prague["ansible_password"] != "czechlight" {
		t.Errorf("ansible_password = %v", prague["ansible_password"])
	}
	if _, ok := prague["ansible_port"]; ok {
		t.Error("default port should be omitted")
	}
	if parsed.All.Hosts["roadm-brno"]["ansible_port"] != 8300 {
		t.Errorf("ansible_port = %v", parsed.All.Hosts["roadm-brno"]["ansible_port"])
	}

	// schema key order within an entry
	host := strings.Index(out, "ansible_host")
	user := strings.Index(out, "ansible_user")
	pass := strings.Index(out, "ansible_password")
	if !(host < user && user < pass) {
		t.Errorf("entry keys out of order:\n%s", out)
	}

	// host entries sorted by device name
	if brno, prg := strings.Index(out, "roadm-brno"), strings.Index(out, "roadm-prague"); brno > prg {
		t.Errorf("hosts should be sorted by name:\n%s", out)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	if err := Build(testDevices()).Write(path); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("inventory not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("inventory mode = %o, want 0600 (it holds credentials)", perm)
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc), "all:") || !strings.Contains(string(doc), "hosts:") {
		t.Errorf("unexpected document:\n%s", doc)
	}
}
