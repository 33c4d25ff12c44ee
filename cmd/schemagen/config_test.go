package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/compiler/load"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadFromFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schemagen.yaml")
		writeFile(t, path, `
app_target: out/schema
framework_target: out/system
sources: [defs/app.yaml]
framework_sources: [defs/system]
template_dir: templates
no_format: true
`)
		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "out/schema", cfg.AppTarget)
		assert.Equal(t, "out/system", cfg.FrameworkTarget)
		assert.Equal(t, []string{"defs/app.yaml"}, cfg.Sources)
		assert.Equal(t, []string{"defs/system"}, cfg.FrameworkSources)
		assert.Equal(t, "templates", cfg.TemplateDir)
		assert.True(t, cfg.NoFormat)
		assert.Equal(t, gen.DefaultRuntime, cfg.Runtime)
		assert.Equal(t, gen.DefaultHeader, cfg.Header)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schemagen.json")
		writeFile(t, path, `{"app_target": "a", "framework_target": "f", "runtime": "example.com/db"}`)
		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a", cfg.AppTarget)
		assert.Equal(t, "f", cfg.FrameworkTarget)
		assert.Equal(t, "example.com/db", cfg.Runtime)
		assert.Equal(t, []string{"schemas"}, cfg.Sources)
	})

	t.Run("unsupported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schemagen.toml")
		writeFile(t, path, "")
		_, err := LoadFromFile(path)
		assert.ErrorContains(t, err, "unsupported config file format")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "none.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schemagen.yaml")
		writeFile(t, path, "sources: [")
		_, err := LoadFromFile(path)
		assert.ErrorContains(t, err, "failed to parse YAML config")
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCHEMAGEN_APP_TARGET", "env/app")
	t.Setenv("SCHEMAGEN_FRAMEWORK_TARGET", "env/system")
	t.Setenv("SCHEMAGEN_TEMPLATE_DIR", "env/templates")
	t.Setenv("SCHEMAGEN_RUNTIME", "example.com/env")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)
	assert.Equal(t, "env/app", cfg.AppTarget)
	assert.Equal(t, "env/system", cfg.FrameworkTarget)
	assert.Equal(t, "env/templates", cfg.TemplateDir)
	assert.Equal(t, "example.com/env", cfg.Runtime)
}

func TestConfigResolve(t *testing.T) {
	cfg := &Config{
		AppTarget:        "app",
		FrameworkTarget:  "/abs/system",
		Sources:          []string{"defs"},
		FrameworkSources: []string{"system.yaml"},
	}
	cfg.Resolve("/project")
	assert.Equal(t, filepath.Join("/project", "app"), cfg.AppTarget)
	assert.Equal(t, "/abs/system", cfg.FrameworkTarget)
	assert.Equal(t, []string{filepath.Join("/project", "defs")}, cfg.Sources)
	assert.Equal(t, []string{filepath.Join("/project", "system.yaml")}, cfg.FrameworkSources)
	assert.Empty(t, cfg.TemplateDir)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.AppTarget = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Sources = nil
	assert.ErrorContains(t, cfg.Validate(), "definition source")

	cfg = DefaultConfig()
	cfg.Runtime = ""
	cfg.TemplateDir = "templates"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
	assert.ErrorContains(t, err, "Runtime")
}

func TestConfigSourceList(t *testing.T) {
	cfg := &Config{Sources: []string{"a"}, FrameworkSources: []string{"b"}}
	assert.Equal(t, []load.Source{
		{Path: "a"},
		{Path: "b", Framework: true},
	}, cfg.SourceList())
}

func TestConfigOptions(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.AppTarget = filepath.Join(dir, "app")
	cfg.FrameworkTarget = filepath.Join(dir, "system")
	cfg.AppPackage = "models"
	cfg.TemplateDir = dir
	cfg.NoFormat = true

	c, err := gen.NewConfig(cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, cfg.AppTarget, c.AppTarget)
	assert.Equal(t, cfg.FrameworkTarget, c.FrameworkTarget)
	assert.Equal(t, "models", c.AppPackage)
	assert.False(t, c.Format)
	assert.Equal(t, gen.DefaultRuntime, c.Runtime)
}

func TestConfigWatchPaths(t *testing.T) {
	dir := t.TempDir()
	defs := filepath.Join(dir, "defs")
	file := filepath.Join(defs, "system.yaml")
	writeFile(t, file, "")
	other := filepath.Join(dir, "extra", "more.yaml")
	writeFile(t, other, "")

	cfg := &Config{
		Sources:          []string{defs},
		FrameworkSources: []string{file, other},
		TemplateDir:      filepath.Join(dir, "templates"),
	}
	paths, err := cfg.WatchPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{defs, filepath.Join(dir, "extra"), filepath.Join(dir, "templates")}, paths)

	cfg.Sources = []string{filepath.Join(dir, "missing")}
	_, err = cfg.WatchPaths()
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "defs", "app.yaml"), `
products:
  table: products
  nameKey: name
  fields:
    productID: { type: id, isID: true }
    name: { type: text }
`)
	path := filepath.Join(dir, "schemagen.yaml")
	writeFile(t, path, "sources: [defs]\nno_format: true\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	cfg.Resolve(dir)
	require.NoError(t, cfg.Validate())

	require.NoError(t, run(cfg, modeApp))
	for _, name := range []string{"ProductSchema.go", "ProductEntity.go", "ProductColumn.go"} {
		assert.FileExists(t, filepath.Join(dir, "internal", "schema", name))
	}
	assert.NoDirExists(t, filepath.Join(dir, "internal", "system"))
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "a.yaml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "a.YML", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "Schema.tmpl", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "a.yaml", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "a.go", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.ev.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.ev))
		})
	}
}
