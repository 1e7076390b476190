package checkup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/roadm-network/roadmctl/pkg/diff"
)

// Confirmer decides whether a reviewed change set may be applied.
type Confirmer interface {
	Confirm(cs *diff.ChangeSet) (bool, error)
}

// AutoConfirmer approves or declines every change set without asking.
type AutoConfirmer bool

func (a AutoConfirmer) Confirm(*diff.ChangeSet) (bool, error) {
	return bool(a), nil
}

// PromptConfirmer shows the change preview and asks the operator to approve
// it. When the input is a file that is not a terminal, confirmation fails
// rather than silently approving.
type PromptConfirmer struct {
	in  io.Reader
	out io.Writer
}

// NewPromptConfirmer returns a PromptConfirmer reading from in and writing
// to out. Pass os.Stdin and os.Stdout for interactive use.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: in, out: out}
}

func (p *PromptConfirmer) Confirm(cs *diff.ChangeSet) (bool, error) {
	if f, ok := p.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, fmt.Errorf("device %s requires confirmation but stdin is not a terminal", cs.Device)
	}

	fmt.Fprintln(p.out, cs.Preview())
	fmt.Fprintf(p.out, "Apply these changes to %s? [y/N]: ", cs.Device)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
