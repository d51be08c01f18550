package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lattice/internal/diag"
)

// DirResult pairs one checked script with its path relative to the walk
// root.
type DirResult struct {
	Path   string
	Result *Result
}

// listScripts returns every *.lat file under dir, sorted so directory runs
// are deterministic.
func listScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".lat") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every *.lat script under dir concurrently. Each file
// gets its own interners, so workers never share mutable state; results
// come back in path order regardless of completion order. jobs <= 0 means
// one worker per CPU.
func CheckDir(ctx context.Context, dir string, opts Options, jobs int) ([]DirResult, error) {
	files, err := listScripts(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Slots are per-goroutine, no mutex needed.
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := RunFile(path, opts)
			if err != nil {
				return err
			}
			results[i] = DirResult{Path: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AllDiagnostics flattens the per-file bags into one. Each bag is already
// sorted and results arrive in path order, so the flattened bag stays
// deterministic without re-sorting across files.
func AllDiagnostics(results []DirResult) *diag.Bag {
	merged := diag.NewBag(0)
	for _, r := range results {
		merged.Merge(r.Result.Bag)
	}
	return merged
}
