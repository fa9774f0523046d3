package mdparser

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrValidatorUnavailable is returned (possibly wrapped) by a MermaidValidator
// that cannot run. It downgrades the external check to a warning.
var ErrValidatorUnavailable = errors.New("mermaid validator unavailable")

// MermaidValidator checks a diagram with an external tool. A nil error means
// the diagram was accepted.
type MermaidValidator interface {
	Validate(ctx context.Context, diagram string) error
}

// MermaidValidatorFunc adapts a function to the MermaidValidator interface.
type MermaidValidatorFunc func(ctx context.Context, diagram string) error

func (f MermaidValidatorFunc) Validate(ctx context.Context, diagram string) error {
	return f(ctx, diagram)
}

// MermaidCLI validates diagrams by rendering them with the mermaid-cli
// executable (mmdc) into a temporary directory.
type MermaidCLI struct {
	Path    string
	Timeout time.Duration
}

func NewMermaidCLI(path string, timeout time.Duration) *MermaidCLI {
	if path == "" {
		path = "mmdc"
	}
	return &MermaidCLI{Path: path, Timeout: timeout}
}

func (m *MermaidCLI) Validate(ctx context.Context, diagram string) error {
	exe, err := exec.LookPath(m.Path)
	if err != nil {
		return errors.Wrap(ErrValidatorUnavailable, err.Error())
	}

	dir, err := os.MkdirTemp("", "mermaid_validate_")
	if err != nil {
		return errors.Wrap(ErrValidatorUnavailable, err.Error())
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "diagram.mmd")
	output := filepath.Join(dir, "diagram.svg")
	if err := os.WriteFile(input, []byte(diagram), 0600); err != nil {
		return errors.Wrap(ErrValidatorUnavailable, err.Error())
	}

	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, exe, "-i", input, "-o", output)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return errors.New(msg)
	}
	return nil
}
