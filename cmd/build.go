package cmd

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Clean, prune, and build the source distribution without uploading",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRelease(cmd, false)
	},
}

func init() {
	buildCmd.Flags().Bool("dry-run", false, "Do not delete files or run external tools")
	buildCmd.Flags().Bool("verbose", false, "Verbose output")
	buildCmd.Flags().BoolP("yes", "y", false, "Accepted for symmetry with publish; build never prompts")
	buildCmd.Flags().Bool("force", false, "Override the configured-command safety check")
	buildCmd.Flags().Bool("skip-upload", false, "No-op; build never uploads")
	rootCmd.AddCommand(buildCmd)
}
