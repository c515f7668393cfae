package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/milliele/pypub/internal/workspace"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete generated files from the vendored tree",
	Long: `Delete generated files from the vendored tree. Entries matching the
configured pattern are removed except names on the keep list. Example:
  pypub prune --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dry, _ := cmd.Flags().GetBool("dry-run")
		cfg, root, err := loadProject(cmd)
		if err != nil {
			return err
		}
		spec := workspace.VendorSpec{
			Dir:     filepath.Join(root, cfg.Vendor.Dir),
			Pattern: cfg.Vendor.Pattern,
			Keep:    cfg.Vendor.Keep,
		}
		pruned, err := workspace.Prune(spec, dry)
		if err != nil {
			return err
		}
		for _, p := range pruned {
			if rel, rerr := filepath.Rel(root, p); rerr == nil {
				p = rel
			}
			if dry {
				fmt.Printf("would prune %s\n", p)
			} else {
				fmt.Printf("pruned %s\n", p)
			}
		}
		if dry {
			fmt.Printf("%d entries would be pruned\n", len(pruned))
		} else {
			fmt.Printf("pruned %d entries\n", len(pruned))
		}
		return nil
	},
}

func init() {
	pruneCmd.Flags().Bool("dry-run", false, "List what would be deleted without deleting")
	rootCmd.AddCommand(pruneCmd)
}
