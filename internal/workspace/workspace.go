// Package workspace implements the filesystem half of the release pipeline:
// removing build output directories and pruning generated files from the
// vendored tree before packaging.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// VendorSpec selects which vendored entries are pruned. Entries whose base
// name matches Pattern are removed unless the name appears in Keep.
type VendorSpec struct {
	Dir     string
	Pattern string
	Keep    []string
}

// Clean removes each directory recursively. Absent directories are not an
// error; running Clean twice on an already-clean tree is a no-op.
func Clean(dirs ...string) error {
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if err := os.RemoveAll(d); err != nil {
			return fmt.Errorf("clean %s: %w", d, err)
		}
	}
	return nil
}

// Prune walks spec.Dir and removes every entry matching the spec. When
// dryRun is set nothing is deleted; in both modes the returned slice lists
// the affected paths, sorted. A missing or empty vendor dir yields (nil, nil).
func Prune(spec VendorSpec, dryRun bool) ([]string, error) {
	if _, err := os.Stat(spec.Dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat vendor dir: %w", err)
	}

	keep := make(map[string]bool, len(spec.Keep))
	for _, k := range spec.Keep {
		keep[k] = true
	}

	var matched []string
	err := filepath.WalkDir(spec.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == spec.Dir {
			return nil
		}
		name := d.Name()
		ok, merr := filepath.Match(spec.Pattern, name)
		if merr != nil {
			return fmt.Errorf("match %q: %w", spec.Pattern, merr)
		}
		if !ok || keep[name] {
			return nil
		}
		matched = append(matched, path)
		if d.IsDir() {
			// the whole subtree goes; don't descend into it
			if !dryRun {
				if rerr := os.RemoveAll(path); rerr != nil {
					return fmt.Errorf("prune %s: %w", path, rerr)
				}
			}
			return filepath.SkipDir
		}
		if !dryRun {
			if rerr := os.Remove(path); rerr != nil {
				return fmt.Errorf("prune %s: %w", path, rerr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matched)
	return matched, nil
}

// Artifacts lists the regular files under distDir, sorted. An absent dist
// dir yields (nil, nil).
func Artifacts(distDir string) ([]string, error) {
	entries, err := os.ReadDir(distDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dist dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			out = append(out, filepath.Join(distDir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
