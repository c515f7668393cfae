package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/milliele/pypub/internal/db"
	"github.com/milliele/pypub/internal/history"
	"github.com/milliele/pypub/internal/workspace"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the project's release state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, root, err := loadProject(cmd)
		if err != nil {
			return err
		}
		project, version := resolveMeta(cfg, root)
		fmt.Printf("project: %s\n", describeRelease(project, version))

		printDirStatus(cfg.DistDir, filepath.Join(root, cfg.DistDir))
		printDirStatus(cfg.BuildDir, filepath.Join(root, cfg.BuildDir))

		spec := workspace.VendorSpec{
			Dir:     filepath.Join(root, cfg.Vendor.Dir),
			Pattern: cfg.Vendor.Pattern,
			Keep:    cfg.Vendor.Keep,
		}
		prunable, err := workspace.Prune(spec, true)
		if err != nil {
			return err
		}
		fmt.Printf("- vendored tree: %s (%d prunable entries)\n", cfg.Vendor.Dir, len(prunable))

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		last, err := history.NewRepository(dbConn).LastRun()
		if err != nil {
			return err
		}
		if last == nil {
			fmt.Println("- last run: none recorded")
			return nil
		}
		fmt.Printf("- last run: #%d %s %s", last.ID, last.Status, last.StartedAt)
		if last.FailedStep.Valid {
			fmt.Printf(" (failed at %s)", last.FailedStep.String)
		}
		fmt.Println()
		return nil
	},
}

func printDirStatus(label, path string) {
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		fmt.Printf("- %s/: present\n", label)
	} else {
		fmt.Printf("- %s/: absent\n", label)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
