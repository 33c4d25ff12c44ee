package gen

import "strings"

// alignAttributes right-pads the names and types of the attributes to
// the widths of the longest ones.
func alignAttributes(attrs []*Attribute) []*Attribute {
	var nameWidth, fieldWidth, typeWidth int
	for _, a := range attrs {
		nameWidth = max(nameWidth, textWidth(a.Name))
		fieldWidth = max(fieldWidth, textWidth(a.Field))
		typeWidth = max(typeWidth, textWidth(a.Type))
	}
	for _, a := range attrs {
		a.Name = padRight(a.Name, nameWidth)
		a.Field = padRight(a.Field, fieldWidth)
		a.Type = padRight(a.Type, typeWidth)
	}
	return attrs
}

const (
	docOpen     = "/**"
	docClose    = "*/"
	docParam    = "@param "
	docOptional = " Optional."
)

// alignParams aligns the @param lines of every /** */ block. The types
// are padded to the longest type of the block, and the names of the
// Optional. parameters to the longest of those names.
func alignParams(contents string) string {
	lines := strings.Split(contents, "\n")
	var typeWidth, nameWidth int
	for i, line := range lines {
		switch {
		case strings.Contains(line, docOpen):
			typeWidth, nameWidth = longestParam(lines[i+1:])
		case strings.Contains(line, docClose):
			typeWidth, nameWidth = 0, 0
		case strings.Contains(line, docParam):
			lines[i] = alignParam(line, typeWidth, nameWidth)
		}
	}
	return strings.Join(lines, "\n")
}

// longestParam returns the type and Optional. name widths of the block
// starting at lines, up to its closing marker.
func longestParam(lines []string) (typeWidth, nameWidth int) {
	for _, line := range lines {
		if strings.Contains(line, docClose) {
			break
		}
		p, ok := splitParam(line)
		if !ok {
			continue
		}
		typeWidth = max(typeWidth, textWidth(p.docType))
		if p.optional() {
			nameWidth = max(nameWidth, textWidth(p.name))
		}
	}
	return typeWidth, nameWidth
}

func alignParam(line string, typeWidth, nameWidth int) string {
	p, ok := splitParam(line)
	if !ok || p.name == "" {
		return line
	}
	var b strings.Builder
	b.WriteString(p.prefix)
	b.WriteString(padRight(p.docType, typeWidth))
	b.WriteString(" ")
	if p.optional() {
		b.WriteString(padRight(p.name, nameWidth))
	} else {
		b.WriteString(p.name)
	}
	if p.rest != "" {
		b.WriteString(" ")
		b.WriteString(p.rest)
	}
	return b.String()
}

// param is a parsed "@param type name[ Optional.]" line.
type param struct {
	prefix  string
	docType string
	name    string
	rest    string
}

func (p param) optional() bool {
	return strings.HasPrefix(p.rest, strings.TrimSpace(docOptional))
}

func splitParam(line string) (param, bool) {
	i := strings.Index(line, docParam)
	if i < 0 {
		return param{}, false
	}
	p := param{prefix: line[:i+len(docParam)]}
	rest := strings.TrimLeft(line[len(p.prefix):], " ")
	p.docType, rest, _ = strings.Cut(rest, " ")
	p.name, rest, _ = strings.Cut(strings.TrimLeft(rest, " "), " ")
	p.rest = strings.TrimLeft(rest, " ")
	return p, true
}
