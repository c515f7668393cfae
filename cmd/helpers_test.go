package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func setupTempHome(t *testing.T) string {
	t.Helper()
	d := t.TempDir()
	t.Setenv("PYPUB_HOME", d)
	return d
}

func captureOutput(f func()) (string, string) {
	oldOut := os.Stdout
	oldErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	outC := make(chan string)
	errC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		outC <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rErr)
		errC <- buf.String()
	}()

	f()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldOut
	os.Stderr = oldErr

	out := <-outC
	err := <-errC
	return out, err
}

// writeProject lays out a throwaway project directory with a pypub.yaml and
// a vendored tree, returning the config path.
func writeProject(t *testing.T, configBody string) (string, string) {
	t.Helper()
	root := t.TempDir()
	cfgPath := filepath.Join(root, "pypub.yaml")
	if err := os.WriteFile(cfgPath, []byte(configBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	mustWrite(t, filepath.Join(root, "vendor", "gen.py"))
	mustWrite(t, filepath.Join(root, "vendor", "sub", "__init__.py"))
	mustWrite(t, filepath.Join(root, "vendor", "sub", "mod.py"))
	return cfgPath, root
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func writeFileBody(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

const testProjectConfig = `project: demo
version: 0.1.0
vendor:
  dir: vendor
`
