package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/milliele/pypub/internal/config"
	"github.com/milliele/pypub/internal/db"
	"github.com/milliele/pypub/internal/executor"
	"github.com/milliele/pypub/internal/history"
	"github.com/milliele/pypub/internal/interactive"
	"github.com/milliele/pypub/internal/pipeline"
	"github.com/milliele/pypub/internal/release"
	"github.com/milliele/pypub/internal/security"
	"github.com/milliele/pypub/internal/user"
	"github.com/milliele/pypub/internal/workspace"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Clean, prune, build, and upload the source distribution",
	Long: `Clean, prune, build, and upload the source distribution. Steps run in a
fixed order and the first failure halts the run; re-running is always safe
because the clean and prune steps rebuild the pre-build state. Example:
  pypub publish --verbose`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRelease(cmd, true)
	},
}

// runRelease drives the pipeline for `publish` (withUpload) and `build`.
func runRelease(cmd *cobra.Command, withUpload bool) error {
	dry, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	yes, _ := cmd.Flags().GetBool("yes")
	force, _ := cmd.Flags().GetBool("force")
	skipUpload, _ := cmd.Flags().GetBool("skip-upload")
	if skipUpload {
		withUpload = false
	}

	cfg, root, err := loadProject(cmd)
	if err != nil {
		return err
	}
	project, version := resolveMeta(cfg, root)

	if err := checkConfiguredCommands(cfg, withUpload, force); err != nil {
		return err
	}

	if withUpload && !yes && !dry {
		if !interactive.Confirm(fmt.Sprintf("Upload %s to the package index?", describeRelease(project, version))) {
			fmt.Println("aborted")
			return nil
		}
	}

	runner := executor.New(dry, verbose)
	ctx := context.Background()

	// Dry runs only report what would happen; they are not releases and
	// are not recorded.
	if dry {
		pl := release.New(cfg, runner, root, os.Stdout, release.Options{DryRun: true, Verbose: verbose, Upload: withUpload})
		return pl.Run(ctx)
	}

	dbConn, err := db.InitDB()
	if err != nil {
		return err
	}
	defer func() { _ = dbConn.Close() }()
	repo := history.NewRepository(dbConn)

	var pubName, pubEmail *string
	if p, ok, _ := user.GetProfile(); ok {
		if p.Name != "" {
			pubName = &p.Name
		}
		if p.Email != "" {
			pubEmail = &p.Email
		}
	}
	var versionPtr *string
	if version != "" {
		versionPtr = &version
	}
	runID, err := repo.CreateRun(project, versionPtr, pubName, pubEmail)
	if err != nil {
		return err
	}
	rec := history.NewRecorder(repo, runID)

	pl := release.New(cfg, runner, root, os.Stdout, release.Options{Verbose: verbose, Upload: withUpload, Observer: rec})
	runErr := pl.Run(ctx)

	if err := finishRun(repo, runID, cfg, root, runErr); err != nil {
		return err
	}
	if err := rec.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record step history: %v\n", err)
	}
	if runErr == nil {
		if withUpload {
			fmt.Printf("published %s\n", describeRelease(project, version))
		} else {
			fmt.Printf("built %s\n", describeRelease(project, version))
		}
	}
	return runErr
}

func finishRun(repo *history.Repository, runID int64, cfg config.Project, root string, runErr error) error {
	if runErr == nil {
		var artifact *string
		if files, err := workspace.Artifacts(filepath.Join(root, cfg.DistDir)); err == nil && len(files) > 0 {
			// newest archive is the one just built
			name := filepath.Base(files[len(files)-1])
			artifact = &name
		}
		return repo.FinishRun(runID, history.StatusOK, nil, nil, artifact)
	}
	var failedStep *string
	var exitCode *int
	var se *pipeline.StepError
	if errors.As(runErr, &se) {
		s := string(se.Step)
		failedStep = &s
		exitCode = &se.ExitCode
	}
	return repo.FinishRun(runID, history.StatusFailed, failedStep, exitCode, nil)
}

// checkConfiguredCommands screens the hand-edited build/upload commands
// before anything irreversible happens.
func checkConfiguredCommands(cfg config.Project, withUpload, force bool) error {
	if force {
		return nil
	}
	if err := security.CheckAllowed(cfg.BuildCommand); err != nil {
		return fmt.Errorf("refusing to run configured build command %q: %v (use --force to override)", cfg.BuildCommand, err)
	}
	if withUpload {
		if err := security.CheckAllowed(cfg.UploadCommand); err != nil {
			return fmt.Errorf("refusing to run configured upload command %q: %v (use --force to override)", cfg.UploadCommand, err)
		}
	}
	return nil
}

func describeRelease(project, version string) string {
	if version == "" {
		return project
	}
	return fmt.Sprintf("%s %s", project, version)
}

func init() {
	publishCmd.Flags().Bool("dry-run", false, "Do not delete files or run external tools")
	publishCmd.Flags().Bool("verbose", false, "Verbose output")
	publishCmd.Flags().BoolP("yes", "y", false, "Skip the upload confirmation prompt")
	publishCmd.Flags().Bool("force", false, "Override the configured-command safety check")
	publishCmd.Flags().Bool("skip-upload", false, "Run the pipeline but stop before uploading")
	rootCmd.AddCommand(publishCmd)
}
