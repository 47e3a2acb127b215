package system

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Runner abstracts command execution so the pipeline can be exercised
// without touching the host.
type Runner interface {
	// Run executes a command and returns its captured output
	Run(name string, args ...string) (string, error)

	// LookPath reports where a binary lives in PATH
	LookPath(name string) (string, error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec
func NewRunner() Runner {
	return execRunner{}
}

// Run executes the command, capturing stdout and stderr. On failure the
// error carries the tool diagnostic flattened to a single line.
func (execRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%s failed: %v: %s", name, err, Flatten(stderr.String()))
	}
	return out.String(), nil
}

// LookPath reports where a binary lives in PATH
func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Flatten collapses a multi-line tool diagnostic into a single line
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
