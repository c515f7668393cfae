package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "pypub.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.DistDir != def.DistDir || cfg.BuildDir != def.BuildDir {
		t.Fatalf("expected default dirs, got %+v", cfg)
	}
	if cfg.Vendor.Pattern != "*.py" {
		t.Fatalf("expected default vendor pattern, got %q", cfg.Vendor.Pattern)
	}
	if len(cfg.Vendor.Keep) != 1 || cfg.Vendor.Keep[0] != "__init__.py" {
		t.Fatalf("expected default keep list, got %v", cfg.Vendor.Keep)
	}
	if cfg.BuildCommand != "python3 setup.py sdist" {
		t.Fatalf("unexpected default build command: %q", cfg.BuildCommand)
	}
	if cfg.UploadCommand != "twine upload" {
		t.Fatalf("unexpected default upload command: %q", cfg.UploadCommand)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pypub.yaml")
	body := `project: js2py-ext
version: 0.72.2
vendor:
  dir: js2py/py_node_modules
build_command: python3 -m build --sdist
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "js2py-ext" || cfg.Version != "0.72.2" {
		t.Fatalf("name/version not loaded: %+v", cfg)
	}
	if cfg.BuildCommand != "python3 -m build --sdist" {
		t.Fatalf("build command not overridden: %q", cfg.BuildCommand)
	}
	// fields the file omitted keep their defaults
	if cfg.UploadCommand != "twine upload" {
		t.Fatalf("upload command should default: %q", cfg.UploadCommand)
	}
	if cfg.Vendor.Pattern != "*.py" || len(cfg.Vendor.Keep) == 0 {
		t.Fatalf("partial vendor block should keep defaults: %+v", cfg.Vendor)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pypub.yaml")
	if err := os.WriteFile(path, []byte("vendor: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidateRejectsAbsoluteVendorDir(t *testing.T) {
	cfg := Default()
	cfg.Vendor.Dir = string(filepath.Separator) + "etc"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected absolute vendor dir to be rejected")
	}
}

func TestValidateRejectsControlCharName(t *testing.T) {
	cfg := Default()
	cfg.Name = "bad\x00name"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected control character in name to be rejected")
	}
}

func TestValidateRejectsPathsInKeepList(t *testing.T) {
	cfg := Default()
	cfg.Vendor.Keep = []string{filepath.Join("sub", "__init__.py")}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected keep entry with separator to be rejected")
	}
}

func TestWriteThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pypub.yaml")
	cfg := Default()
	cfg.Name = "demo"
	if err := cfg.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), "project: demo") {
		t.Fatalf("written file missing project name: %s", b)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "demo" {
		t.Fatalf("round trip lost the name: %+v", got)
	}
}
