package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milliele/pypub/internal/executor"
	"github.com/milliele/pypub/internal/interactive"
	"github.com/milliele/pypub/internal/release"
	"github.com/milliele/pypub/internal/security"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the archives already present under dist to the package index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dry, _ := cmd.Flags().GetBool("dry-run")
		verbose, _ := cmd.Flags().GetBool("verbose")
		yes, _ := cmd.Flags().GetBool("yes")
		force, _ := cmd.Flags().GetBool("force")

		cfg, root, err := loadProject(cmd)
		if err != nil {
			return err
		}
		if !force {
			if err := security.CheckAllowed(cfg.UploadCommand); err != nil {
				return fmt.Errorf("refusing to run configured upload command %q: %v (use --force to override)", cfg.UploadCommand, err)
			}
		}
		project, version := resolveMeta(cfg, root)
		if !yes && !dry {
			if !interactive.Confirm(fmt.Sprintf("Upload %s to the package index?", describeRelease(project, version))) {
				fmt.Println("aborted")
				return nil
			}
		}
		runner := executor.New(dry, verbose)
		return release.Upload(context.Background(), cfg, runner, root, os.Stdout, release.Options{DryRun: dry, Verbose: verbose})
	},
}

func init() {
	uploadCmd.Flags().Bool("dry-run", false, "Do not invoke the upload tool")
	uploadCmd.Flags().Bool("verbose", false, "Verbose output")
	uploadCmd.Flags().BoolP("yes", "y", false, "Skip the upload confirmation prompt")
	uploadCmd.Flags().Bool("force", false, "Override the configured-command safety check")
	rootCmd.AddCommand(uploadCmd)
}
