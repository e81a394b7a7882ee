package procrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/roach88/casecheck/internal/jsontext"
)

const pipeWaitDelay = 2 * time.Second

// Outcome is the result of one child process that ran to termination.
// It is produced regardless of the exit code.
type Outcome struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Runner starts the program under test. The zero value is not usable;
// construct with New.
type Runner struct {
	// Command is the executable followed by its arguments.
	Command []string

	// Dir is the working directory of the child.
	Dir string

	// Env, when non-nil, replaces the inherited environment.
	Env []string

	// Timeout bounds each call when positive. Zero means no limit.
	Timeout time.Duration

	Logger *slog.Logger
}

// New builds a Runner from a whitespace-delimited command line.
// An empty dir means the current directory.
func New(command, dir string) (*Runner, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("command is empty")
	}
	if dir == "" {
		dir = "."
	}
	return &Runner{
		Command: fields,
		Dir:     dir,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Run starts one child process, feeds it input, and waits for it to exit.
//
// Returns *SpawnError when the process cannot be started and *TimeoutError
// when Timeout or the context deadline elapses first. Any other exit, zero
// or not, yields an Outcome and a nil error.
func (r *Runner) Run(ctx context.Context, input jsontext.Value) (*Outcome, error) {
	payload, err := jsontext.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = r.Env
	// Non-*os.File readers and writers make os/exec start one copy goroutine
	// per stream; stdin is closed as soon as the reader hits EOF.
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if r.Timeout > 0 {
		// A killed child may leave grandchildren holding the output pipes.
		cmd.WaitDelay = pipeWaitDelay
	}

	if err := checkDir(r.Dir); err != nil {
		return nil, &SpawnError{Command: r.Command, Dir: r.Dir, Err: err}
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Command: r.Command, Dir: r.Dir, Err: err}
	}
	r.logger().Debug("process started",
		"pid", cmd.Process.Pid,
		"command", r.Command,
		"dir", r.Dir,
		"input_bytes", len(payload),
	)

	waitErr := cmd.Wait()
	outcome := &Outcome{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, &TimeoutError{After: outcome.Duration.Round(time.Millisecond), Outcome: outcome}
		}
		return nil, ctxErr
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		// I/O failure while copying the streams; the exit status is still known.
		r.logger().Warn("process streams incomplete", "error", waitErr)
	}

	r.logger().Debug("process exited",
		"exit_code", outcome.ExitCode,
		"stdout_bytes", len(outcome.Stdout),
		"stderr_bytes", len(outcome.Stderr),
		"duration", outcome.Duration,
	)
	return outcome, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// checkDir rejects a working directory that does not exist or is not a
// directory. exec reports a missing Dir as a lookup failure of the
// executable, which hides the real cause.
func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
