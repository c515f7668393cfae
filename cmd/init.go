package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/milliele/pypub/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default pypub.yaml into the working directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.DefaultFileName
		}
		if !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
		cfg := config.Default()
		if cfg.Name == "" {
			if abs, err := filepath.Abs(path); err == nil {
				cfg.Name = filepath.Base(filepath.Dir(abs))
			}
		}
		if err := cfg.Write(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
