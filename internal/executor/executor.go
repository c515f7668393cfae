// Package executor runs configured external tool commands.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Runner is an interface for executing commands. It allows tests to inject
// fake implementations without running real shell commands.
type Runner interface {
	Run(ctx context.Context, command string, cwd string, stdout io.Writer, stderr io.Writer) error
}

// Executor runs shell commands in an OS-aware way.
type Executor struct {
	DryRun  bool
	Verbose bool
	Shell   string // optional override (e.g., "pwsh")
}

// New returns a Runner backed by the real Executor implementation.
func New(dry, verbose bool) Runner {
	return &Executor{DryRun: dry, Verbose: verbose}
}

// Run executes the given command string using an OS-appropriate shell
// invocation (`bash -c` on Unix, `cmd /C` on Windows). The command is
// sanitized and validated first; stdout/stderr are written to the provided
// writers. If cwd is non-empty, the command runs in that directory.
func (e *Executor) Run(ctx context.Context, command string, cwd string, stdout io.Writer, stderr io.Writer) error {
	command, err := validateAndSanitize(command)
	if err != nil {
		return err
	}

	if e.DryRun {
		if e.Verbose {
			_, _ = fmt.Fprintf(stdout, "dry-run: %s\n", command)
		}
		return nil
	}

	shell, args := shellInvocation(command, e.Shell)
	if _, err := exec.LookPath(shell); err != nil {
		return fmt.Errorf("shell not found in PATH: %s", shell)
	}

	cmd := exec.CommandContext(ctx, shell, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	var bout, berr bytes.Buffer
	cmd.Stdout = io.MultiWriter(&bout, stdout)
	cmd.Stderr = io.MultiWriter(&berr, stderr)

	if err := cmd.Run(); err != nil {
		errStr := strings.TrimSpace(berr.String())
		if errStr != "" {
			return fmt.Errorf("command failed: %w (shell=%s args=%q stderr=%q)", err, shell, args, errStr)
		}
		return fmt.Errorf("command failed: %w (shell=%s args=%q)", err, shell, args)
	}
	return nil
}

// ExitCode extracts the process exit code from an error returned by Run.
// Errors that did not come from a process exit map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if c := exitErr.ExitCode(); c > 0 {
			return c
		}
	}
	return 1
}

// JoinArgs quotes and appends file arguments to a configured command string
// so paths containing spaces survive the shell round-trip.
func JoinArgs(command string, files []string) string {
	if len(files) == 0 {
		return command
	}
	return command + " " + shellquote.Join(files...)
}

// shellInvocation returns the shell executable and arguments for the platform.
// Optional `override` lets callers request an alternate shell (e.g., pwsh).
func shellInvocation(command string, override string) (string, []string) {
	if override != "" {
		switch override {
		case "pwsh", "powershell":
			return override, []string{"-Command", command}
		default:
			return override, []string{"-c", command}
		}
	}
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "bash", []string{"-c", command}
}

// sanitizeCommand normalizes unicode characters that editors commonly insert
// into hand-written config files (smart quotes, NBSP, zero-width spaces) and
// drops embedded NULs.
func sanitizeCommand(s string) string {
	r := strings.NewReplacer(
		"\u2018", "'", // left single quote
		"\u2019", "'", // right single quote
		"\u201C", "\"", // left double quote
		"\u201D", "\"", // right double quote
		"\u00A0", " ", // NO-BREAK SPACE
		"\u200B", "", // zero width space
	)
	rp := r.Replace(s)
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, rp)
}

func validateAndSanitize(command string) (string, error) {
	command = sanitizeCommand(command)
	if strings.Contains(command, "\n") {
		return "", fmt.Errorf("invalid command: contains newline characters; each command must be a single line")
	}
	if strings.IndexFunc(command, func(r rune) bool { return r == 0 || (r < 32 && r != '\t') || r == 0x7f }) != -1 {
		return "", fmt.Errorf("invalid command: contains control characters; remove non-printable characters")
	}
	if strings.TrimSpace(command) == "" {
		return "", fmt.Errorf("invalid command: empty")
	}
	return command, nil
}
