package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/milliele/pypub/internal/workspace"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the dist and build output directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, root, err := loadProject(cmd)
		if err != nil {
			return err
		}
		dist := filepath.Join(root, cfg.DistDir)
		build := filepath.Join(root, cfg.BuildDir)
		if err := workspace.Clean(dist, build); err != nil {
			return err
		}
		fmt.Printf("removed %s and %s\n", cfg.DistDir, cfg.BuildDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
