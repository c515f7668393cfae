package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/milliele/pypub/internal/config"
	"github.com/milliele/pypub/internal/pyproject"
)

// loadProject resolves the project config for the invoked command. The
// project root is the directory containing the config file (the working
// directory when none is given).
func loadProject(cmd *cobra.Command) (config.Project, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFileName
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return config.Project{}, "", err
	}
	cfg, err := config.Load(abs)
	if err != nil {
		return cfg, "", err
	}
	return cfg, filepath.Dir(abs), nil
}

// resolveMeta fills the project name and version: pypub.yaml wins, then
// pyproject.toml, then the project directory name.
func resolveMeta(cfg config.Project, root string) (string, string) {
	name, version := cfg.Name, cfg.Version
	if name != "" && version != "" {
		return name, version
	}
	if s, ok, err := pyproject.Load(filepath.Join(root, pyproject.FileName)); err == nil && ok {
		n, v := s.NameVersion()
		if name == "" {
			name = n
		}
		if version == "" {
			version = v
		}
	}
	if name == "" {
		name = filepath.Base(root)
	}
	return name, version
}
