// Package release assembles the publish pipeline from a project
// configuration: clean the output dirs, prune the vendored tree, build the
// source distribution, upload it.
package release

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/milliele/pypub/internal/config"
	"github.com/milliele/pypub/internal/executor"
	"github.com/milliele/pypub/internal/pipeline"
	"github.com/milliele/pypub/internal/workspace"
)

// Options select which steps run and how.
type Options struct {
	DryRun  bool
	Verbose bool
	// Upload includes the upload step. `pypub build` leaves it off.
	Upload bool
	// Observer, when set, receives step lifecycle events.
	Observer pipeline.Observer
}

// New builds the pipeline for the project rooted at root. Steps always run
// in the fixed order clean, prune, build, then optionally upload.
func New(cfg config.Project, runner executor.Runner, root string, stdout io.Writer, opts Options) *pipeline.Pipeline {
	steps := []pipeline.Step{
		{Name: pipeline.StateClean, Run: cleanStep(cfg, root, stdout, opts)},
		{Name: pipeline.StatePrune, Run: pruneStep(cfg, root, stdout, opts)},
		{Name: pipeline.StateBuild, Run: buildStep(cfg, runner, root, stdout)},
	}
	if opts.Upload {
		steps = append(steps, pipeline.Step{Name: pipeline.StateUpload, Run: uploadStep(cfg, runner, root, stdout, opts)})
	}
	return &pipeline.Pipeline{
		Steps:    steps,
		ExitCode: executor.ExitCode,
		Observer: opts.Observer,
	}
}

// Upload runs only the upload step. Used by `pypub upload`, which assumes
// the archive was already built.
func Upload(ctx context.Context, cfg config.Project, runner executor.Runner, root string, stdout io.Writer, opts Options) error {
	return uploadStep(cfg, runner, root, stdout, opts)(ctx)
}

func cleanStep(cfg config.Project, root string, stdout io.Writer, opts Options) func(context.Context) error {
	return func(_ context.Context) error {
		dist := filepath.Join(root, cfg.DistDir)
		build := filepath.Join(root, cfg.BuildDir)
		if opts.DryRun {
			fmt.Fprintf(stdout, "dry-run: would remove %s and %s\n", dist, build)
			return nil
		}
		if opts.Verbose {
			fmt.Fprintf(stdout, "removing %s and %s\n", dist, build)
		}
		return workspace.Clean(dist, build)
	}
}

func pruneStep(cfg config.Project, root string, stdout io.Writer, opts Options) func(context.Context) error {
	return func(_ context.Context) error {
		spec := workspace.VendorSpec{
			Dir:     filepath.Join(root, cfg.Vendor.Dir),
			Pattern: cfg.Vendor.Pattern,
			Keep:    cfg.Vendor.Keep,
		}
		pruned, err := workspace.Prune(spec, opts.DryRun)
		if err != nil {
			return err
		}
		if opts.DryRun {
			for _, p := range pruned {
				fmt.Fprintf(stdout, "dry-run: would prune %s\n", p)
			}
			return nil
		}
		if opts.Verbose {
			for _, p := range pruned {
				fmt.Fprintf(stdout, "pruned %s\n", p)
			}
		}
		return nil
	}
}

func buildStep(cfg config.Project, runner executor.Runner, root string, stdout io.Writer) func(context.Context) error {
	return func(ctx context.Context) error {
		fmt.Fprintf(stdout, "-> %s\n", cfg.BuildCommand)
		return runner.Run(ctx, cfg.BuildCommand, root, stdout, stdout)
	}
}

func uploadStep(cfg config.Project, runner executor.Runner, root string, stdout io.Writer, opts Options) func(context.Context) error {
	return func(ctx context.Context) error {
		if opts.DryRun {
			fmt.Fprintf(stdout, "dry-run: would run %s against %s\n", cfg.UploadCommand, filepath.Join(cfg.DistDir, "*"))
			return nil
		}
		files, err := workspace.Artifacts(filepath.Join(root, cfg.DistDir))
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("nothing to upload: no artifacts under %s", cfg.DistDir)
		}
		cmd := executor.JoinArgs(cfg.UploadCommand, relativize(root, files))
		fmt.Fprintf(stdout, "-> %s\n", cmd)
		return runner.Run(ctx, cmd, root, stdout, stdout)
	}
}

// relativize converts artifact paths to root-relative form so the upload
// command line matches what an operator would type in the project dir.
func relativize(root string, files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if rel, err := filepath.Rel(root, f); err == nil {
			out = append(out, rel)
		} else {
			out = append(out, f)
		}
	}
	return out
}
