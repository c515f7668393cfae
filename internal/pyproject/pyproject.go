// Package pyproject reads the subset of pyproject.toml metadata pypub needs
// to label release runs: the project name and version.
package pyproject

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the standard metadata file looked up in the project root.
const FileName = "pyproject.toml"

// Schema is a partial view of a pyproject.toml file.
// https://packaging.python.org/en/latest/specifications/declaring-project-metadata/
type Schema struct {
	Project     *Project     `toml:"project"`
	BuildSystem *BuildSystem `toml:"build-system"`
}

// Project carries the metadata fields pypub reports on.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// BuildSystem identifies the packaging backend. Informational only.
type BuildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

// Load parses the pyproject.toml at path. A missing file returns
// (nil, false, nil) so callers can fall back to other metadata sources.
func Load(path string) (*Schema, bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var s Schema
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, true, nil
}

// NameVersion returns the project name and version, or empty strings when
// the corresponding table or field is absent.
func (s *Schema) NameVersion() (string, string) {
	if s == nil || s.Project == nil {
		return "", ""
	}
	return s.Project.Name, s.Project.Version
}
