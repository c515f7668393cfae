package cmd

import (
	"fmt"

	"github.com/milliele/pypub/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pypub %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
