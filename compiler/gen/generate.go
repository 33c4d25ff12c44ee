package gen

import (
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/schemagen/compiler/load"
)

// Generator generates the Schema, Entity and Column artifacts of every
// definition of a registry.
type Generator struct {
	cfg      *Config
	registry *load.Registry
	// templates are loaded by the first run and reused by later ones.
	templates *templates
}

// Summary holds the number of definitions generated per partition.
type Summary struct {
	App       int
	Framework int
}

// partition is one of the two output trees.
type partition struct {
	name      string
	framework bool
	target    string
	pkg       string
}

// artifact is one rendered file of a definition.
type artifact struct {
	phase string
	name  string
	data  []byte
}

// New creates a generator for the definitions of reg.
func New(reg *load.Registry, opts ...Option) (*Generator, error) {
	if reg == nil {
		return nil, NewConfigError("Registry", nil, "registry cannot be nil")
	}
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, registry: reg}, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config { return g.cfg }

func (g *Generator) partition(framework bool) *partition {
	p := &partition{name: "App", target: g.cfg.AppTarget, pkg: g.cfg.AppPackage}
	if framework {
		p = &partition{name: "Framework", framework: true, target: g.cfg.FrameworkTarget, pkg: g.cfg.FrameworkPackage}
	}
	if p.pkg == "" {
		p.pkg = packageName(p.target)
	}
	return p
}

// Generate clears the target of the partition and generates the three
// artifacts of every definition of that partition. It returns the number
// of definitions generated. A malformed definition, or one that fails to
// render, format or write, is logged and skipped; missing templates, a
// registry that cannot be loaded and a target that cannot be cleared are
// returned as errors.
func (g *Generator) Generate(framework bool) (int, error) {
	if err := g.loadTemplates(); err != nil {
		return 0, err
	}
	entries, err := g.registry.Entries()
	if err != nil {
		return 0, &ConfigError{Option: "Sources", Message: "cannot load definitions", Cause: err}
	}
	p := g.partition(framework)
	if err := g.cfg.Writer.Clear(p.target); err != nil {
		return 0, NewGenerationError("clear", p.target, "cannot clear the target", err)
	}
	var (
		generated []*Structure
		names     = make(map[string]string)
	)
	for _, e := range entries {
		if e.FromFramework != framework {
			continue
		}
		s, err := g.generate(p, e, names)
		if err != nil {
			g.cfg.Logger.Printf("schemagen: skipped %s: %v", e.Key, err)
			continue
		}
		generated = append(generated, s)
	}
	if err := g.writeIndex(p, generated); err != nil {
		g.cfg.Logger.Printf("schemagen: %v", err)
	}
	g.cfg.Logger.Printf("- Generated the %s codes -> %d schemas", p.name, len(generated))
	return len(generated), nil
}

// GenerateAll generates the application partition, then the framework
// partition.
func (g *Generator) GenerateAll() (Summary, error) {
	var (
		sum Summary
		err error
	)
	if sum.App, err = g.Generate(false); err != nil {
		return sum, err
	}
	sum.Framework, err = g.Generate(true)
	return sum, err
}

func (g *Generator) loadTemplates() error {
	if g.templates != nil {
		return nil
	}
	t, err := loadTemplates(g.cfg.Templates)
	if err != nil {
		return err
	}
	g.templates = t
	return nil
}

// generate renders the three artifacts of a definition concurrently and
// writes them. Nothing is written unless all of them render, and the
// files already written are removed when a write fails.
// names maps the schema names generated so far to their definition.
func (g *Generator) generate(p *partition, e *load.Entry, names map[string]string) (*Structure, error) {
	def, err := e.Definition()
	if err != nil {
		return nil, NewSchemaError(e.Key, "", "cannot decode definition", err)
	}
	s, err := NewStructure(e.Key, def)
	if err != nil {
		return nil, err
	}
	if other, ok := names[s.Schema]; ok {
		return nil, NewSchemaError(e.Key, "", "schema name "+s.Schema+" already generated by "+other, nil)
	}
	steps := []struct {
		phase  string
		name   string
		text   string
		data   map[string]any
		finish func(string) string
	}{
		{"schema", s.Schema + "Schema.go", g.templates.schema, schemaContext(p, s, g.cfg.Runtime, g.cfg.Header), finishSchema},
		{"entity", s.Schema + "Entity.go", g.templates.entity, entityContext(p, s, g.cfg.Runtime, g.cfg.Header), nil},
		{"column", s.Schema + "Column.go", g.templates.column, columnContext(p, s, g.cfg.Header), nil},
	}
	files := make([]artifact, len(steps))
	var eg errgroup.Group
	for i, step := range steps {
		eg.Go(func() error {
			text, err := g.cfg.Renderer.Render(step.phase, step.text, step.data)
			if err != nil {
				return NewGenerationError(step.phase, step.name, "cannot render template", err)
			}
			if step.finish != nil {
				text = step.finish(text)
			}
			data, err := g.format(filepath.Join(p.target, step.name), text)
			if err != nil {
				return NewGenerationError(step.phase, step.name, "cannot format source", err)
			}
			files[i] = artifact{phase: step.phase, name: step.name, data: data}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for i, f := range files {
		if err := g.cfg.Writer.Write(p.target, f.name, f.data); err != nil {
			g.rollback(p, files[:i+1])
			return nil, NewGenerationError("write", f.name, "cannot write file", err)
		}
	}
	names[s.Schema] = e.Key
	return s, nil
}

// rollback removes the files of a definition that failed to write.
func (g *Generator) rollback(p *partition, files []artifact) {
	for _, f := range files {
		if err := g.cfg.Writer.Remove(p.target, f.name); err != nil {
			g.cfg.Logger.Printf("schemagen: cannot remove %s: %v", f.name, err)
		}
	}
}

// format formats the source, leaving the imports as written.
func (g *Generator) format(name, text string) ([]byte, error) {
	if !g.cfg.Format {
		return []byte(text), nil
	}
	return imports.Process(name, []byte(text), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
}

// packageName derives a package name from the target directory.
func packageName(target string) string {
	name := strings.ToLower(filepath.Base(filepath.Clean(target)))
	name = strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			return r
		}
		return -1
	}, name)
	if name == "" || ('0' <= name[0] && name[0] <= '9') {
		return "schema" + name
	}
	return name
}
