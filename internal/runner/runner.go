package runner

import (
	"errors"  // errors.As on process failures
	"fmt"     // Error messages
	"io"      // Stream wiring
	"os"      // Standard streams
	"os/exec" // Child processes
	"strings" // Command line rendering

	"project-setup/internal/logger" // Colored logging
)

// Command is one external process invocation.
type Command struct {
	Name string   // Executable, resolved through PATH
	Args []string // Arguments passed verbatim, no shell
	Dir  string   // Working directory, empty for the current one
}

// Argv returns the full argument vector including the program name.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command line the way it is logged.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// ExitError reports a process that ran and exited with a non-zero status.
type ExitError struct {
	Command Command // The command that failed
	Code    int     // Process exit status
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command.Name, e.Code)
}

// StartError reports a process that could not be started (missing executable,
// bad working directory).
type StartError struct {
	Command Command // The command that could not start
	Err     error   // Underlying exec or os error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Command.Name, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// IsExternal reports whether err came from an external process rather than this tool.
func IsExternal(err error) bool {
	var exitErr *ExitError
	var startErr *StartError
	return errors.As(err, &exitErr) || errors.As(err, &startErr)
}

// Runner executes commands to completion, one at a time.
type Runner interface {
	Run(cmd Command) error
}

// Exec runs commands as child processes with their output streamed through.
type Exec struct {
	Stdin  io.Reader // Forwarded so tools can prompt the user
	Stdout io.Writer // Child stdout, streamed as it is produced
	Stderr io.Writer // Child stderr, streamed as it is produced
}

// NewExec returns an Exec wired to the process's standard streams.
func NewExec() *Exec {
	return &Exec{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts c, waits for it, and classifies the failure if any.
// It is attempted exactly once.
func (r *Exec) Run(c Command) error {
	logger.Info("[INFO] Running: %s\n", c)
	if c.Dir != "" {
		logger.Debug("[DEBUG] Working directory: %s\n", c.Dir)
	}

	// Streams are wired directly, so output appears live rather than buffered.
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		return &StartError{Command: c, Err: err}
	}
	// A non-zero status becomes ExitError; anything else from Wait is an
	// I/O failure of the streams.
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: c, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("wait for %s: %w", c.Name, err)
	}
	logger.Debug("[DEBUG] %s finished successfully\n", c.Name)
	return nil
}

// Recorder is a Runner that records commands instead of executing them.
// Results are consumed in order; a missing result means success.
type Recorder struct {
	Commands []Command // Every command passed to Run, in order
	Results  []error   // Scripted results, one per call
}

// Run records c and returns the next scripted result.
func (r *Recorder) Run(c Command) error {
	r.Commands = append(r.Commands, c)
	if len(r.Results) == 0 {
		return nil
	}
	err := r.Results[0]
	r.Results = r.Results[1:]
	return err
}
