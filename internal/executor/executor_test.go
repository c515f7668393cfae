package executor

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"
)

func TestDryRunDoesNotExecute(t *testing.T) {
	var out bytes.Buffer
	e := &Executor{DryRun: true, Verbose: true}
	if err := e.Run(context.Background(), "definitely-not-a-real-tool --flag", "", &out, &out); err != nil {
		t.Fatalf("dry-run should never fail: %v", err)
	}
	if !strings.Contains(out.String(), "dry-run: definitely-not-a-real-tool --flag") {
		t.Fatalf("expected dry-run message, got %q", out.String())
	}
}

func TestRunRejectsMultilineCommands(t *testing.T) {
	e := &Executor{}
	err := e.Run(context.Background(), "echo a\necho b", "", &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected multiline command to be rejected")
	}
}

func TestRunRejectsEmptyCommands(t *testing.T) {
	e := &Executor{}
	if err := e.Run(context.Background(), "   ", "", &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected empty command to be rejected")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses bash")
	}
	var out, errBuf bytes.Buffer
	e := &Executor{}
	if err := e.Run(context.Background(), "echo hello", "", &out, &errBuf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Fatalf("expected command output, got %q", out.String())
	}
}

func TestRunRunsInWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses bash")
	}
	dir := t.TempDir()
	var out bytes.Buffer
	e := &Executor{}
	if err := e.Run(context.Background(), "pwd", dir, &out, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), dir) {
		t.Fatalf("expected cwd %q in output, got %q", dir, out.String())
	}
}

func TestExitCodePropagation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses bash")
	}
	e := &Executor{}
	err := e.Run(context.Background(), "exit 7", "", &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected failure from exit 7")
	}
	if code := ExitCode(err); code != 7 {
		t.Fatalf("expected exit code 7, got %d", code)
	}
}

func TestExitCodeDefaults(t *testing.T) {
	if code := ExitCode(nil); code != 0 {
		t.Fatalf("nil error should map to 0, got %d", code)
	}
	if code := ExitCode(fmt.Errorf("not an exec error")); code != 1 {
		t.Fatalf("non-exec error should map to 1, got %d", code)
	}
}

func TestJoinArgsQuotesPaths(t *testing.T) {
	got := JoinArgs("twine upload", []string{"dist/pkg-0.1.tar.gz", "dist/with space.tar.gz"})
	if !strings.HasPrefix(got, "twine upload ") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "'dist/with space.tar.gz'") && !strings.Contains(got, "\"dist/with space.tar.gz\"") {
		t.Fatalf("path with space must be quoted: %q", got)
	}
}

func TestJoinArgsNoFiles(t *testing.T) {
	if got := JoinArgs("twine upload", nil); got != "twine upload" {
		t.Fatalf("expected command unchanged, got %q", got)
	}
}

func TestSanitizeSmartQuotes(t *testing.T) {
	got, err := validateAndSanitize("echo “hello”")
	if err != nil {
		t.Fatalf("validateAndSanitize: %v", err)
	}
	if !strings.Contains(got, "\"hello\"") {
		t.Fatalf("smart quotes should be normalized, got %q", got)
	}
}
