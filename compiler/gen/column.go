package gen

// Column is one entry of the Column artifact.
type Column struct {
	Name     string
	Value    string
	AddSpace bool
}

// columns builds the column registry of a structure. Every expression
// and join group after the first one is preceded by a blank line. A name
// that was already registered is dropped.
func columns(s *Structure) []*Column {
	var (
		cols     []*Column
		seen     = make(map[string]bool)
		addSpace = true
	)
	add := func(name, value string, space bool) {
		name = upperFirst(name)
		if seen[name] {
			return
		}
		seen[name] = true
		cols = append(cols, &Column{Name: name, Value: value, AddSpace: space})
	}
	for _, f := range s.Fields {
		add(f.Name, s.Table+"."+f.Key, false)
		if f.IsFile() {
			add(f.Name+"Url", f.Name+"Url", false)
		}
	}
	for _, e := range s.Expressions {
		add(e.Name, e.Key, addSpace && len(cols) > 0)
		addSpace = false
	}
	for _, j := range s.Joins {
		addSpace = true
		alias := j.Alias()
		for _, f := range j.Fields {
			add(f.PrefixName(), alias+"."+f.Key, addSpace && len(cols) > 0)
			addSpace = false
		}
		for _, m := range j.Merges {
			add(m.Key, m.Key, addSpace && len(cols) > 0)
			addSpace = false
		}
	}
	width := 0
	for _, c := range cols {
		width = max(width, textWidth(c.Name))
	}
	for _, c := range cols {
		c.Name = padRight(c.Name, width)
	}
	return cols
}

// columnContext returns the template context of the Column artifact.
func columnContext(p *partition, s *Structure, header string) map[string]any {
	return map[string]any{
		"header":  header,
		"package": p.pkg,
		"name":    s.Schema,
		"table":   s.Table,
		"columns": columns(s),
	}
}
