// internal/config/config.go
//
// This package handles configuration and the .texkeep directory structure.
// Every thesis that uses texkeep gets a .texkeep/ folder created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// TexkeepDir is the name of the directory we create in each thesis root
	TexkeepDir = ".texkeep"

	defaultChaptersDir = "chapters"
	defaultMainFile    = "main.tex"
	defaultTexExt      = ".tex"

	// defaultTextWidthCm is the line width of the scrbook class in cm.
	// Obtained by including printlen in the preamble and typing
	// \uselengthunit{cm}\printlength{\textwidth} in a file.
	defaultTextWidthCm = 14.89787

	defaultArrayStretch = 1.8
)

const defaultProjectConfigYAML = `# texkeep project configuration
version: 1

# Where the chapter tree lives and which file is the document root,
# both relative to the thesis directory.
layout:
  chapters_dir: chapters
  main_file: main.tex

# Constants baked into the generated LaTeX.
latex:
  arraystretch: 1.8
  tex_extension: .tex
  # Line width of the scrbook class in cm; tables wider than this
  # trigger a warning when they are published.
  textwidth_cm: 14.89787
`

// LayoutConfig locates the document tree inside the thesis directory.
type LayoutConfig struct {
	ChaptersDir string `yaml:"chapters_dir"`
	MainFile    string `yaml:"main_file"`
}

// LaTeXConfig carries the constants baked into generated LaTeX text.
type LaTeXConfig struct {
	ArrayStretch float64 `yaml:"arraystretch"`
	TexExtension string  `yaml:"tex_extension"`
	TextWidthCm  float64 `yaml:"textwidth_cm"`
}

// ProjectConfig models .texkeep/config.yaml.
type ProjectConfig struct {
	Version int          `yaml:"version"`
	Layout  LayoutConfig `yaml:"layout"`
	LaTeX   LaTeXConfig  `yaml:"latex"`
}

// Config holds the runtime configuration for texkeep.
type Config struct {
	// ThesisDir is the thesis root the user ran `texkeep` against
	ThesisDir string

	// TexkeepProjectDir is ThesisDir/.texkeep
	TexkeepProjectDir string

	Project ProjectConfig
}

// InitTexkeepDir creates the .texkeep directory structure in the given
// thesis directory and seeds the default config if none exists.
//
// Structure created:
// .texkeep/
// ├── logs/         <- scan and publish activity
// └── config.yaml   <- project configuration
func InitTexkeepDir(thesisDir string) error {
	texkeepDir := filepath.Join(thesisDir, TexkeepDir)
	if err := os.MkdirAll(filepath.Join(texkeepDir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(texkeepDir, "config.yaml"))
}

// NewConfig creates a Config populated from ThesisDir/.texkeep/config.yaml,
// falling back to defaults when the file is absent.
func NewConfig(thesisDir string) (*Config, error) {
	cfg := &Config{
		ThesisDir:         thesisDir,
		TexkeepProjectDir: filepath.Join(thesisDir, TexkeepDir),
		Project:           defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ChaptersDir returns the absolute path of the chapter tree.
func (c *Config) ChaptersDir() string {
	return filepath.Join(c.ThesisDir, c.Project.Layout.ChaptersDir)
}

// MainFile returns the absolute path of the root document.
func (c *Config) MainFile() string {
	return filepath.Join(c.ThesisDir, c.Project.Layout.MainFile)
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.TexkeepProjectDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.TexkeepProjectDir, "config.yaml")
}

// TexExtension returns the configured LaTeX file extension, ".tex" by default.
func (c *Config) TexExtension() string {
	return c.Project.LaTeX.TexExtension
}

// ArrayStretch returns the default arraystretch for published tables.
func (c *Config) ArrayStretch() float64 {
	return c.Project.LaTeX.ArrayStretch
}

// TextWidthCm returns the usable line width of the document class in cm.
func (c *Config) TextWidthCm() float64 {
	return c.Project.LaTeX.TextWidthCm
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Layout: LayoutConfig{
			ChaptersDir: defaultChaptersDir,
			MainFile:    defaultMainFile,
		},
		LaTeX: LaTeXConfig{
			ArrayStretch: defaultArrayStretch,
			TexExtension: defaultTexExt,
			TextWidthCm:  defaultTextWidthCm,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Layout.ChaptersDir == "" {
		pc.Layout.ChaptersDir = defaultChaptersDir
	}
	if pc.Layout.MainFile == "" {
		pc.Layout.MainFile = defaultMainFile
	}
	if pc.LaTeX.ArrayStretch == 0 {
		pc.LaTeX.ArrayStretch = defaultArrayStretch
	}
	if pc.LaTeX.TexExtension == "" {
		pc.LaTeX.TexExtension = defaultTexExt
	}
	if pc.LaTeX.TextWidthCm == 0 {
		pc.LaTeX.TextWidthCm = defaultTextWidthCm
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Layout.ChaptersDir = strings.Trim(strings.TrimSpace(pc.Layout.ChaptersDir), "/")
	pc.Layout.MainFile = strings.TrimSpace(pc.Layout.MainFile)
	pc.LaTeX.TexExtension = strings.TrimSpace(pc.LaTeX.TexExtension)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Layout.ChaptersDir == "" {
		return fmt.Errorf("layout.chapters_dir is required")
	}
	if pc.Layout.MainFile == "" {
		return fmt.Errorf("layout.main_file is required")
	}
	if !strings.HasPrefix(pc.LaTeX.TexExtension, ".") {
		return fmt.Errorf("latex.tex_extension must start with a dot, got %q", pc.LaTeX.TexExtension)
	}
	if pc.LaTeX.ArrayStretch <= 0 {
		return fmt.Errorf("latex.arraystretch must be positive")
	}
	if pc.LaTeX.TextWidthCm <= 0 {
		return fmt.Errorf("latex.textwidth_cm must be positive")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
