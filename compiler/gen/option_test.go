package gen

import (
	"bytes"
	"io/fs"
	"log"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig(WithTargets("app", "system"))
		require.NoError(t, err)
		assert.Equal(t, "app", cfg.AppTarget)
		assert.Equal(t, "system", cfg.FrameworkTarget)
		assert.Equal(t, DefaultRuntime, cfg.Runtime)
		assert.Equal(t, DefaultHeader, cfg.Header)
		assert.True(t, cfg.Format)
		assert.Equal(t, []fs.FS{BuiltinTemplates}, cfg.Templates)
		assert.Equal(t, TextRenderer{}, cfg.Renderer)
		assert.Equal(t, DirWriter{}, cfg.Writer)
		assert.Equal(t, log.Default(), cfg.Logger)
	})

	t.Run("missing targets", func(t *testing.T) {
		_, err := NewConfig()
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("overlapping targets", func(t *testing.T) {
		for _, targets := range [][2]string{
			{"gen/app", "gen/app/"},
			{"gen", "gen/system"},
			{"gen/app/../system/nested", "gen/system"},
		} {
			_, err := NewConfig(WithTargets(targets[0], targets[1]))
			require.Error(t, err, targets)
			assert.True(t, IsConfigError(err), targets)
		}
	})

	t.Run("sibling targets", func(t *testing.T) {
		_, err := NewConfig(WithTargets("gen/app", "gen/application"))
		assert.NoError(t, err)
		_, err = NewConfig(WithTargets("gen/..app", "gen"))
		assert.Error(t, err)
	})

	t.Run("template dir before builtin", func(t *testing.T) {
		cfg, err := NewConfig(WithTargets("app", "system"), WithTemplateDir("templates"))
		require.NoError(t, err)
		require.Len(t, cfg.Templates, 2)
		assert.Equal(t, BuiltinTemplates, cfg.Templates[1])
	})

	t.Run("templates replace builtin", func(t *testing.T) {
		custom := fstest.MapFS{}
		cfg, err := NewConfig(WithTargets("app", "system"), WithTemplates(custom))
		require.NoError(t, err)
		assert.Equal(t, []fs.FS{custom}, cfg.Templates)
	})
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		ok   bool
	}{
		{"empty app target", WithTargets("", "system"), false},
		{"empty framework target", WithTargets("app", ""), false},
		{"empty runtime", WithRuntime(""), false},
		{"runtime", WithRuntime("example.com/db"), true},
		{"empty template dir", WithTemplateDir(""), false},
		{"no templates", WithTemplates(), false},
		{"nil renderer", WithRenderer(nil), false},
		{"nil writer", WithWriter(nil), false},
		{"nil logger", WithLogger(nil), true},
		{"header", WithHeader("generated"), true},
		{"format", WithFormat(false), true},
		{"packages", WithPackages("store", "system"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Config{}).Apply(tt.opt)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestApplyAll(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyAll(WithRuntime(""), WithHeader("h"), WithWriter(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Runtime")
	assert.Contains(t, err.Error(), "Writer")
	assert.Equal(t, "h", cfg.Header)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	g, _, _ := newTestGenerator(t, products, WithLogger(log.New(&buf, "", 0)))
	_, err := g.Generate(false)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "- Generated the App codes -> 1 schemas")
}
