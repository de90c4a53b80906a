// Package executor spawns approved commands as child processes.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/doeshing/vosh/internal/domain"
	"github.com/doeshing/vosh/internal/ports"
)

// ExecError reports a failed spawn or a non-zero exit.
type ExecError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execute %q: exit %d: %v", e.Command, e.ExitCode, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Local runs commands directly on the host.
//
// The command text is split on whitespace into a program name and bare
// argument tokens. There is no shell, no quoting and no escaping: an
// argument containing a space cannot be expressed. That limitation is kept
// deliberately; changing it changes the executed argument vector.
type Local struct {
	log ports.Logger
}

// NewLocal builds the executor.
func NewLocal(log ports.Logger) *Local {
	return &Local{log: log}
}

// Execute implements ports.CommandExecutor.
func (e *Local) Execute(ctx context.Context, command string) (domain.ExecutionResult, error) {
	argv := Tokenize(command)
	if len(argv) == 0 {
		err := &ExecError{Command: command, ExitCode: -1, Err: fmt.Errorf("empty command")}
		return domain.ExecutionResult{Err: err}, err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.ExecutionResult{
		Ran:        runErr == nil,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: duration,
	}

	if runErr == nil {
		e.log.Info("command executed", map[string]interface{}{
			"program":     argv[0],
			"duration_ms": duration,
		})
		return result, nil
	}

	code := -1
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	}
	result.ExitCode = code
	execErr := &ExecError{Command: command, ExitCode: code, Err: runErr}
	result.Err = execErr

	e.log.Error("command execution failed", execErr, map[string]interface{}{
		"program": argv[0],
	})
	return result, execErr
}

// Tokenize splits command text on whitespace into an argument vector.
func Tokenize(command string) []string {
	return strings.Fields(command)
}

var _ ports.CommandExecutor = (*Local)(nil)
