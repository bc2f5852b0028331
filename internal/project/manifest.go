// Package project locates and loads the surveyor.toml manifest that scopes
// one analysis run.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the root walk looks for.
const ManifestName = "surveyor.toml"

// Manifest is a loaded surveyor.toml plus its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is the decoded manifest shape.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Chunks  ChunksConfig  `toml:"chunks"`
	Auth    AuthConfig    `toml:"auth"`
	Locator LocatorConfig `toml:"locator"`
}

// ProjectConfig names the directories one run reads and writes.
type ProjectConfig struct {
	Name      string `toml:"name"`
	FactsDir  string `toml:"facts_dir"`
	OutputDir string `toml:"output_dir"`
	SourceDir string `toml:"source_dir"`
}

// ChunksConfig overrides the per-chunk caps; zero keeps the defaults.
type ChunksConfig struct {
	MaxEndpoints int `toml:"max_endpoints"`
	MaxPages     int `toml:"max_pages"`
}

// AuthConfig seeds the global auth fact when extractors found none.
type AuthConfig struct {
	TokenType       string `toml:"token_type"`
	LoginEndpoint   string `toml:"login_endpoint"`
	CookieName      string `toml:"cookie_name"`
	DefaultEmail    string `toml:"default_email"`
	DefaultPassword string `toml:"default_password"`
}

// LocatorConfig tunes registry and resolution.
type LocatorConfig struct {
	TestIDAttrs []string `toml:"testid_attrs"`
	RouteDirs   []string `toml:"route_dirs"`
}

// FindSurveyorToml walks up from startDir to locate surveyor.toml.
func FindSurveyorToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
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

// Load walks up from startDir and decodes the first manifest found.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindSurveyorToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return Config{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [project].name", path)
	}
	if cfg.Project.FactsDir == "" {
		cfg.Project.FactsDir = "facts"
	}
	if cfg.Project.OutputDir == "" {
		cfg.Project.OutputDir = "out"
	}
	if cfg.Chunks.MaxEndpoints < 0 || cfg.Chunks.MaxPages < 0 {
		return Config{}, fmt.Errorf("%s: [chunks] caps must not be negative", path)
	}
	return cfg, nil
}

// FactsDir resolves the facts directory against the manifest root.
func (m *Manifest) FactsDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Project.FactsDir))
}

// OutputDir resolves the output directory against the manifest root.
func (m *Manifest) OutputDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Project.OutputDir))
}
