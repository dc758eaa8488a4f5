package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/logging"
)

// ExitOK is the status of a successful command.
const ExitOK = 0

// FailureExitCode is the process exit code used by TryOrFail.
const FailureExitCode = 1

// FailureGlyph prefixes the message printed by TryOrFail.
const FailureGlyph = "✘"

// CommandError reports a command that exited with a non-zero status.
// It matches errors.ErrCommandFailed with errors.Is.
type CommandError struct {
	Line    string
	Status  int
	Message string
}

func (e *CommandError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Line
	}
	return fmt.Sprintf("%s (exit status %d)", msg, e.Status)
}

// Is reports whether target is errors.ErrCommandFailed.
func (e *CommandError) Is(target error) bool {
	return target == errors.ErrCommandFailed
}

// Runner executes command lines synchronously.
type Runner struct {
	// Stdout receives the echoed command line and its captured output.
	Stdout io.Writer

	// Stderr receives the failure message printed by TryOrFail.
	Stderr io.Writer

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is appended to the process environment.
	Env []string

	// Exit terminates the process. Tests replace it.
	Exit func(code int)
}

// New creates a Runner wired to the process's standard streams.
func New() *Runner {
	return &Runner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Exit:   os.Exit,
	}
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

// Run echoes commandLine, executes it, echoes its combined output when
// non-empty, and returns the exit status. A non-zero status is not an error;
// the error is reserved for lines that cannot be parsed or interpreted.
func (r *Runner) Run(ctx context.Context, commandLine string) (int, error) {
	out := r.stdout()
	fmt.Fprintln(out, commandLine)

	prog, err := syntax.NewParser().Parse(strings.NewReader(commandLine), "")
	if err != nil {
		return -1, errors.Wrapf(err, "parsing command line %q", commandLine)
	}

	var combined bytes.Buffer
	opts := []interp.RunnerOption{
		interp.StdIO(nil, &combined, &combined),
		interp.Env(expand.ListEnviron(append(os.Environ(), r.Env...)...)),
		interp.ExecHandlers(startHandler(runtime.GOOS)),
	}
	if r.Dir != "" {
		opts = append(opts, interp.Dir(r.Dir))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		return -1, errors.Wrap(err, "creating interpreter")
	}

	runErr := sh.Run(ctx, prog)

	if captured := combined.String(); captured != "" {
		if !strings.HasSuffix(captured, "\n") {
			captured += "\n"
		}
		fmt.Fprint(out, captured)
	}

	status, err := exitStatus(runErr)
	logging.FromContext(ctx).Debug("command finished", "line", commandLine, "status", status)
	return status, err
}

// Check runs commandLine and converts a non-zero status into a *CommandError
// carrying failureMessage.
func (r *Runner) Check(ctx context.Context, commandLine, failureMessage string) error {
	status, err := r.Run(ctx, commandLine)
	if err != nil {
		return err
	}
	if status != ExitOK {
		return &CommandError{Line: commandLine, Status: status, Message: failureMessage}
	}
	return nil
}

// TryOrFail runs commandLine and terminates the process with
// FailureExitCode after printing failureMessage when the command does not
// succeed.
func (r *Runner) TryOrFail(ctx context.Context, commandLine, failureMessage string) {
	if err := r.Check(ctx, commandLine, failureMessage); err != nil {
		slog.Debug("command failed", "line", commandLine, "error", err)
		r.Fail(failureMessage)
	}
}

// Fail prints the marked failure message and terminates the process.
func (r *Runner) Fail(message string) {
	w := r.stderr()
	line := FailureGlyph + " " + message
	if logging.SupportsColor(w) {
		line = color.New(color.FgRed, color.Bold).Sprint(line)
	}
	fmt.Fprintln(w, line)

	exit := r.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(FailureExitCode)
}

func exitStatus(err error) (int, error) {
	if err == nil {
		return ExitOK, nil
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return int(status), nil
	}
	return -1, errors.Wrap(err, "running command")
}
