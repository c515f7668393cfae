package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milliele/pypub/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "pypub",
	Short: "pypub publishes Python source distributions",
	Long:  "pypub cleans build output, prunes generated vendored files, builds a source distribution, and uploads it to a package index",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pypub: run 'pypub --help' to see available commands")
	},
}

// Execute executes the root command. When a pipeline step fails, the
// process exits with that step's exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := 1
		var se *pipeline.StepError
		if errors.As(err, &se) && se.ExitCode > 0 {
			code = se.ExitCode
		}
		os.Exit(code)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the project config file (default ./pypub.yaml)")
}
