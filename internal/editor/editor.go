// Package editor opens project folders in an external editor.
package editor

import (
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Opener opens a folder for editing.
type Opener interface {
	Open(path string) error
}

// CommandOpener starts an editor command with the folder as its last argument.
type CommandOpener struct {
	name   string
	args   []string
	logger *zap.Logger
}

// NewCommandOpener parses command (for example "code" or "code -n") into an
// executable and leading arguments.
func NewCommandOpener(command string, logger *zap.Logger) (*CommandOpener, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandOpener{
		name:   fields[0],
		args:   fields[1:],
		logger: logger,
	}, nil
}

// Command returns the exec.Cmd that would open path.
func (o *CommandOpener) Command(path string) *exec.Cmd {
	args := append(append([]string{}, o.args...), path)
	return exec.Command(o.name, args...)
}

// Open starts the editor and returns once the process has launched. The
// process is reaped in the background.
func (o *CommandOpener) Open(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	cmd := o.Command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start editor %q: %w", o.name, err)
	}
	o.logger.Info("Editor started", zap.String("editor", o.name), zap.String("path", path), zap.Int("pid", cmd.Process.Pid))

	go func() {
		if err := cmd.Wait(); err != nil {
			o.logger.Warn("Editor exited with error", zap.String("editor", o.name), zap.Error(err))
		}
	}()
	return nil
}
