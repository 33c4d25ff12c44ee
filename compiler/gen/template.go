package gen

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"text/template"
)

// Template file names looked up in the template chain.
const (
	SchemaTemplate = "Schema.tmpl"
	EntityTemplate = "Entity.tmpl"
	ColumnTemplate = "Column.tmpl"
)

//go:embed template/*.tmpl
var builtin embed.FS

// BuiltinTemplates holds the bundled Schema, Entity and Column templates.
var BuiltinTemplates = mustSub(builtin, "template")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer renders a named template text with the given context. The
// artifacts of a definition are rendered concurrently.
type Renderer interface {
	Render(name, text string, data map[string]any) (string, error)
}

// TextRenderer renders templates with text/template. A key missing from
// the context is an error.
type TextRenderer struct{}

// Funcs are the functions available to the templates.
var Funcs = template.FuncMap{
	"quote": strconv.Quote,
}

// Render implements Renderer.
func (TextRenderer) Render(name, text string, data map[string]any) (string, error) {
	t, err := template.New(name).Funcs(Funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return b.String(), nil
}

// templates holds the loaded template texts of a run.
type templates struct {
	schema string
	entity string
	column string
}

// loadTemplates reads the three templates from the first source of the
// chain that has them. A missing template is a *ConfigError.
func loadTemplates(chain []fs.FS) (*templates, error) {
	read := func(name string) (string, error) {
		for _, fsys := range chain {
			data, err := fs.ReadFile(fsys, name)
			switch {
			case err == nil:
				return string(data), nil
			case !errors.Is(err, fs.ErrNotExist):
				return "", &ConfigError{Option: "Templates", Value: name, Message: "cannot read template", Cause: err}
			}
		}
		return "", &ConfigError{Option: "Templates", Value: name, Message: "template not found", Cause: fs.ErrNotExist}
	}
	var (
		t   templates
		err error
	)
	if t.schema, err = read(SchemaTemplate); err != nil {
		return nil, err
	}
	if t.entity, err = read(EntityTemplate); err != nil {
		return nil, err
	}
	if t.column, err = read(ColumnTemplate); err != nil {
		return nil, err
	}
	return &t, nil
}
