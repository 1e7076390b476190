package checkup

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAutoConfirmer(t *testing.T) {
	cs := testChangeSet()

	ok, err := AutoConfirmer(true).Confirm(cs)
	if err != nil || !ok {
		t.Errorf("AutoConfirmer(true) = %v, %v", ok, err)
	}
	ok, err = AutoConfirmer(false).Confirm(cs)
	if err != nil || ok {
		t.Errorf("AutoConfirmer(false) = %v, %v", ok, err)
	}
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"y", "y\n", true},
		{"upper y", "Y\n", true},
		{"yes", "yes\n", true},
		{"upper yes", "YES\n", true},
		{"n", "n\n", false},
		{"no", "no\n", false},
		{"empty line", "\n", false},
		{"garbage", "anything else\n", false},
		{"closed stdin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPromptConfirmer(strings.NewReader(tt.input), &out)

			ok, err := p.Confirm(testChangeSet())
			if err != nil {
				t.Fatalf("Confirm() error: %v", err)
			}
			if ok != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, ok, tt.want)
			}
		})
	}
}

func TestPromptConfirmer_ShowsPreview(t *testing.T) {
	var out bytes.Buffer
	p := NewPromptConfirmer(strings.NewReader("y\n"), &out)

	if _, err := p.Confirm(testChangeSet()); err != nil {
		t.Fatalf("Confirm() error: %v", err)
	}

	prompt := out.String()
	for _, want := range []string{
		"Device: roadm-prague",
		"Mode: merge",
		"[ADD] C59",
		"Apply these changes to roadm-prague? [y/N]:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestPromptConfirmer_RejectsNonTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input")
	if err := os.WriteFile(path, []byte("y\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var out bytes.Buffer
	ok, err := NewPromptConfirmer(f, &out).Confirm(testChangeSet())
	if err == nil {
		t.Fatal("Confirm() should fail when input is a file, not a terminal")
	}
	if ok {
		t.Error("Confirm() must not approve on a non-terminal input")
	}
	if !strings.Contains(err.Error(), "roadm-prague") {
		t.Errorf("error should name the device: %v", err)
	}
}
