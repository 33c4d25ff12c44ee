package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/compiler/load"
)

// Config holds the schemagen configuration file.
type Config struct {
	// AppTarget is the output directory of the application schemas
	AppTarget string `json:"app_target" yaml:"app_target"`

	// FrameworkTarget is the output directory of the framework schemas
	FrameworkTarget string `json:"framework_target" yaml:"framework_target"`

	// AppPackage and FrameworkPackage override the generated package names
	AppPackage       string `json:"app_package" yaml:"app_package"`
	FrameworkPackage string `json:"framework_package" yaml:"framework_package"`

	// Sources are the application definition files or directories
	Sources []string `json:"sources" yaml:"sources"`

	// FrameworkSources are the framework definition files or directories
	FrameworkSources []string `json:"framework_sources" yaml:"framework_sources"`

	// TemplateDir is searched for templates before the built-in ones
	TemplateDir string `json:"template_dir" yaml:"template_dir"`

	// Runtime is the import path of the database package
	Runtime string `json:"runtime" yaml:"runtime"`

	// Header is the generated file header
	Header string `json:"header" yaml:"header"`

	// NoFormat disables formatting of the generated code
	NoFormat bool `json:"no_format" yaml:"no_format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AppTarget:       "internal/schema",
		FrameworkTarget: "internal/system",
		Sources:         []string{"schemas"},
		Runtime:         gen.DefaultRuntime,
		Header:          gen.DefaultHeader,
	}
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the SCHEMAGEN_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("SCHEMAGEN_APP_TARGET"); v != "" {
		cfg.AppTarget = v
	}
	if v := os.Getenv("SCHEMAGEN_FRAMEWORK_TARGET"); v != "" {
		cfg.FrameworkTarget = v
	}
	if v := os.Getenv("SCHEMAGEN_TEMPLATE_DIR"); v != "" {
		cfg.TemplateDir = v
	}
	if v := os.Getenv("SCHEMAGEN_RUNTIME"); v != "" {
		cfg.Runtime = v
	}
}

// Resolve makes the relative paths relative to dir, the directory of the
// configuration file.
func (c *Config) Resolve(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.AppTarget = resolve(c.AppTarget)
	c.FrameworkTarget = resolve(c.FrameworkTarget)
	c.TemplateDir = resolve(c.TemplateDir)
	for i := range c.Sources {
		c.Sources[i] = resolve(c.Sources[i])
	}
	for i := range c.FrameworkSources {
		c.FrameworkSources[i] = resolve(c.FrameworkSources[i])
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.AppTarget == "" || c.FrameworkTarget == "" {
		return fmt.Errorf("app_target and framework_target are required")
	}
	if len(c.Sources)+len(c.FrameworkSources) == 0 {
		return fmt.Errorf("at least one definition source is required")
	}
	return new(gen.Config).ApplyAll(c.Options()...)
}

// SourceList returns the definition sources, application ones first.
func (c *Config) SourceList() []load.Source {
	sources := make([]load.Source, 0, len(c.Sources)+len(c.FrameworkSources))
	for _, p := range c.Sources {
		sources = append(sources, load.Source{Path: p})
	}
	for _, p := range c.FrameworkSources {
		sources = append(sources, load.Source{Path: p, Framework: true})
	}
	return sources
}

// Options returns the generator options of the configuration.
func (c *Config) Options() []gen.Option {
	opts := []gen.Option{
		gen.WithTargets(c.AppTarget, c.FrameworkTarget),
		gen.WithPackages(c.AppPackage, c.FrameworkPackage),
		gen.WithHeader(c.Header),
		gen.WithFormat(!c.NoFormat),
		gen.WithRuntime(c.Runtime),
	}
	if c.TemplateDir != "" {
		opts = append(opts, gen.WithTemplateDir(c.TemplateDir))
	}
	return opts
}

// WatchPaths returns the directories holding the definitions and the
// templates: every source directory and the directory of every
// definition file.
func (c *Config) WatchPaths() ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, s := range c.SourceList() {
		if info, err := os.Stat(s.Path); err == nil && info.IsDir() {
			add(s.Path)
		}
	}
	files, err := load.NewRegistry(c.SourceList()...).Files()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		add(filepath.Dir(f))
	}
	if c.TemplateDir != "" {
		add(c.TemplateDir)
	}
	return paths, nil
}
