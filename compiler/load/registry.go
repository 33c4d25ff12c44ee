package load

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source is a definition file or a directory of definition files.
// Every definition of a framework source is framework owned.
type Source struct {
	Path      string
	Framework bool
}

// Registry holds the declared definitions. It is created by the process
// entry point and passed to its consumers; the sources are read once, on
// the first call to Entries, and the result (or error) is kept for the
// lifetime of the registry.
type Registry struct {
	sources []Source
	once    sync.Once
	entries []*Entry
	err     error
}

// NewRegistry returns a registry reading the given sources in order.
func NewRegistry(sources ...Source) *Registry {
	return &Registry{sources: sources}
}

// StaticRegistry returns a registry holding the given entries.
func StaticRegistry(entries ...*Entry) *Registry {
	r := &Registry{entries: entries}
	r.once.Do(func() {})
	return r
}

// Entries returns all the entries in declaration order.
func (r *Registry) Entries() ([]*Entry, error) {
	r.once.Do(func() {
		r.entries, r.err = r.load()
	})
	return r.entries, r.err
}

// Files returns the definition files of all the sources.
func (r *Registry) Files() ([]string, error) {
	var files []string
	for _, s := range r.sources {
		fs, err := sourceFiles(s.Path)
		if err != nil {
			return nil, err
		}
		files = append(files, fs...)
	}
	return files, nil
}

func (r *Registry) load() ([]*Entry, error) {
	var (
		entries []*Entry
		seen    = make(map[string]string)
	)
	for _, s := range r.sources {
		files, err := sourceFiles(s.Path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("load: read definitions: %w", err)
			}
			parsed, err := ParseDefinitions(file, data, s.Framework)
			if err != nil {
				return nil, err
			}
			for _, e := range parsed {
				if prev, ok := seen[e.Key]; ok {
					return nil, fmt.Errorf("load: definition %q in %s already declared in %s", e.Key, file, prev)
				}
				seen[e.Key] = file
				entries = append(entries, e)
			}
		}
	}
	return entries, nil
}

// ParseDefinitions parses a definition file: a YAML (or JSON) mapping from
// table key to definition. Definitions are returned undecoded in file order.
func ParseDefinitions(name string, data []byte, framework bool) ([]*Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load: parse %s: %w", name, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	var raw Ordered[yaml.Node]
	if err := doc.Content[0].Decode(&raw); err != nil {
		return nil, fmt.Errorf("load: parse %s: %w", name, err)
	}
	entries := make([]*Entry, 0, len(raw))
	for i := range raw {
		e := &Entry{
			Key:           raw[i].Key,
			Source:        name,
			FromFramework: framework,
			node:          &raw[i].Value,
		}
		if !framework {
			var origin struct {
				FromFramework bool `yaml:"fromFramework"`
			}
			// A malformed flag is reported when the definition is decoded.
			if err := e.node.Decode(&origin); err == nil {
				e.FromFramework = origin.FromFramework
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func sourceFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load: definitions source: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	dir, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("load: definitions source: %w", err)
	}
	var files []string
	for _, d := range dir {
		if d.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(path, d.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}
