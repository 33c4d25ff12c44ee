package gen

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the generation configuration.
type Config struct {
	// AppTarget is the output directory of application owned definitions.
	AppTarget string
	// FrameworkTarget is the output directory of framework owned definitions.
	FrameworkTarget string
	// AppPackage and FrameworkPackage name the generated packages. They
	// default to the base name of their target.
	AppPackage       string
	FrameworkPackage string
	// Runtime is the import path of the database package used by the
	// generated code.
	Runtime string
	// Header is the first line of every generated file.
	Header string
	// Templates is searched, in order, for the Schema, Entity and Column
	// templates. The built-in templates are used when it is empty.
	Templates []fs.FS
	// Format runs the rendered source through the Go formatter.
	Format bool
	// Renderer renders the templates.
	Renderer Renderer
	// Writer writes the generated files.
	Writer Writer
	// Logger receives the progress and skip messages.
	Logger *log.Logger

	replaced bool
}

// DefaultRuntime is the import path of the bundled database package.
const DefaultRuntime = "github.com/syssam/schemagen/database"

// DefaultHeader is the default generated file header.
const DefaultHeader = "Code generated by schemagen. DO NOT EDIT."

// Option configures code generation.
type Option func(*Config) error

// WithTargets sets the output directories of both partitions.
func WithTargets(app, framework string) Option {
	return func(c *Config) error {
		if app == "" {
			return NewConfigError("AppTarget", nil, "target directory cannot be empty")
		}
		if framework == "" {
			return NewConfigError("FrameworkTarget", nil, "target directory cannot be empty")
		}
		c.AppTarget = app
		c.FrameworkTarget = framework
		return nil
	}
}

// WithPackages sets the generated package names of both partitions.
func WithPackages(app, framework string) Option {
	return func(c *Config) error {
		c.AppPackage = app
		c.FrameworkPackage = framework
		return nil
	}
}

// WithRuntime sets the import path of the database package.
func WithRuntime(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Runtime", nil, "runtime package cannot be empty")
		}
		c.Runtime = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTemplateDir looks up templates in dir before the built-in ones.
func WithTemplateDir(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("TemplateDir", nil, "template directory cannot be empty")
		}
		c.Templates = append(c.Templates, os.DirFS(dir))
		return nil
	}
}

// WithTemplates replaces the template search path. The built-in templates
// are not consulted unless BuiltinTemplates is part of fsys.
func WithTemplates(fsys ...fs.FS) Option {
	return func(c *Config) error {
		if len(fsys) == 0 {
			return NewConfigError("Templates", nil, "at least one template source is required")
		}
		c.Templates = fsys
		c.replaced = true
		return nil
	}
}

// WithFormat enables or disables formatting of the generated source.
func WithFormat(enabled bool) Option {
	return func(c *Config) error {
		c.Format = enabled
		return nil
	}
}

// WithRenderer sets the template renderer.
func WithRenderer(r Renderer) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("Renderer", nil, "renderer cannot be nil")
		}
		c.Renderer = r
		return nil
	}
}

// WithWriter sets the file writer.
func WithWriter(w Writer) Option {
	return func(c *Config) error {
		if w == nil {
			return NewConfigError("Writer", nil, "writer cannot be nil")
		}
		c.Writer = w
		return nil
	}
}

// WithLogger sets the logger. A nil logger discards the output.
func WithLogger(l *log.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Runtime: DefaultRuntime,
		Header:  DefaultHeader,
		Format:  true,
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.AppTarget == "" || c.FrameworkTarget == "" {
		return nil, NewConfigError("Target", nil, "missing target directories in config")
	}
	if overlaps(c.AppTarget, c.FrameworkTarget) {
		return nil, NewConfigError("Target", c.FrameworkTarget, "application and framework targets must not contain each other")
	}
	if len(c.Templates) == 0 {
		c.Templates = []fs.FS{BuiltinTemplates}
	} else if !c.replaced {
		c.Templates = append(c.Templates, BuiltinTemplates)
	}
	if c.Renderer == nil {
		c.Renderer = TextRenderer{}
	}
	if c.Writer == nil {
		c.Writer = DirWriter{}
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c, nil
}

// overlaps reports if one of the directories is or contains the other.
func overlaps(a, b string) bool {
	a, b = absPath(a), absPath(b)
	return within(a, b) || within(b, a)
}

func within(parent, dir string) bool {
	rel, err := filepath.Rel(parent, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func absPath(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return filepath.Clean(dir)
}
