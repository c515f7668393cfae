// Package config provides pypub's data-dir paths and project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milliele/pypub/internal/nameutil"
)

// DefaultFileName is the project config file looked up in the working directory.
const DefaultFileName = "pypub.yaml"

// Vendor describes the vendored tree pruned before packaging.
type Vendor struct {
	// Dir is the vendored directory, relative to the project root.
	Dir string `yaml:"dir"`
	// Pattern is a filename glob; matching entries are deleted during prune.
	Pattern string `yaml:"pattern"`
	// Keep lists exact filenames that survive pruning even when they match Pattern.
	Keep []string `yaml:"keep"`
}

// Project is the pypub.yaml project configuration.
type Project struct {
	Name          string `yaml:"project"`
	Version       string `yaml:"version"`
	DistDir       string `yaml:"dist_dir"`
	BuildDir      string `yaml:"build_dir"`
	Vendor        Vendor `yaml:"vendor"`
	BuildCommand  string `yaml:"build_command"`
	UploadCommand string `yaml:"upload_command"`
}

// Default returns the zero-config project settings. They mirror the layout
// this tool was written for: a setup.py project with a vendored tree of
// generated .py modules that must not ship in the sdist.
func Default() Project {
	return Project{
		DistDir:  "dist",
		BuildDir: "build",
		Vendor: Vendor{
			Dir:     filepath.Join("js2py", "py_node_modules"),
			Pattern: "*.py",
			Keep:    []string{"__init__.py"},
		},
		BuildCommand:  "python3 setup.py sdist",
		UploadCommand: "twine upload",
	}
}

// Load reads the config file at path and merges it over the defaults.
// A missing file is not an error: the defaults are returned unchanged.
func Load(path string) (Project, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	// re-fill fields an explicit empty value would have cleared
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (p *Project) applyDefaults() {
	def := Default()
	if strings.TrimSpace(p.DistDir) == "" {
		p.DistDir = def.DistDir
	}
	if strings.TrimSpace(p.BuildDir) == "" {
		p.BuildDir = def.BuildDir
	}
	if strings.TrimSpace(p.Vendor.Dir) == "" {
		p.Vendor.Dir = def.Vendor.Dir
	}
	if strings.TrimSpace(p.Vendor.Pattern) == "" {
		p.Vendor.Pattern = def.Vendor.Pattern
	}
	if len(p.Vendor.Keep) == 0 {
		p.Vendor.Keep = def.Vendor.Keep
	}
	if strings.TrimSpace(p.BuildCommand) == "" {
		p.BuildCommand = def.BuildCommand
	}
	if strings.TrimSpace(p.UploadCommand) == "" {
		p.UploadCommand = def.UploadCommand
	}
}

// Validate checks the loaded configuration for values that would make the
// pipeline misbehave (control characters in the name, an absolute vendor
// dir escaping the project root, a bad glob pattern).
func (p *Project) Validate() error {
	if p.Name != "" {
		if err := nameutil.ValidateName(p.Name); err != nil {
			return fmt.Errorf("project: %w", err)
		}
	}
	if filepath.IsAbs(p.Vendor.Dir) {
		return fmt.Errorf("vendor.dir must be relative to the project root: %s", p.Vendor.Dir)
	}
	if _, err := filepath.Match(p.Vendor.Pattern, "probe"); err != nil {
		return fmt.Errorf("vendor.pattern: %w", err)
	}
	for _, k := range p.Vendor.Keep {
		if strings.ContainsRune(k, filepath.Separator) || k == "" {
			return fmt.Errorf("vendor.keep entries must be bare filenames, got %q", k)
		}
	}
	return nil
}

// Write serializes the project config to path. Used by `pypub init`.
func (p *Project) Write(path string) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
