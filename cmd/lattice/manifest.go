package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no lattice.toml found\nplease name the script explicitly, e.g.:\n  lattice check path/to/script.lat"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Check   checkConfig   `toml:"check"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type checkConfig struct {
	// Entry is the script or directory `lattice check` runs without an
	// explicit path, relative to the manifest.
	Entry string `toml:"entry"`
	// MaxDiagnostics caps reported diagnostics; 0 keeps the CLI default.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// MaxDepth caps the compatibility recursion; 0 keeps the engine default.
	MaxDepth int `toml:"max_depth"`
}

// findManifest walks from startDir toward the filesystem root looking for
// lattice.toml.
func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "lattice.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadManifest(startDir string) (*projectManifest, bool, error) {
	path, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("check", "entry") || strings.TrimSpace(cfg.Check.Entry) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [check].entry", path)
	}
	return cfg, nil
}

// resolveTarget picks the path to check: the explicit argument when given,
// the manifest's entry otherwise.
func resolveTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	manifest, ok, err := loadManifest(".")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New(noManifestMessage)
	}
	return filepath.Join(manifest.Root, manifest.Config.Check.Entry), nil
}
