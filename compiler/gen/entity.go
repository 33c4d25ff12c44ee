package gen

import (
	"fmt"

	"github.com/syssam/schemagen/schema/field"
)

// Attribute is one declaration of the Entity artifact. Name, Field and
// Type are padded by the alignment pass; Key and Ident keep the raw names.
// Column is the row column Getter reads, empty when the attribute is not
// filled from rows.
type Attribute struct {
	Name    string
	Field   string
	Type    string
	Key     string
	Ident   string
	Default string
	SubType string
	Column  string
	Getter  string
}

// entityAttributes collects the attributes of a structure in emission
// order. A name that was already emitted is dropped.
func entityAttributes(s *Structure) []*Attribute {
	var (
		attrs []*Attribute
		seen  = make(map[string]bool)
	)
	add := func(name, typ, subType, column, getter string) {
		if seen[name] {
			return
		}
		seen[name] = true
		ident := upperFirst(name)
		if name == "id" {
			ident = "ID"
		}
		attrs = append(attrs, &Attribute{
			Name:    name,
			Field:   ident,
			Type:    typ,
			Key:     name,
			Ident:   ident,
			Default: field.DefaultOf(typ),
			SubType: subType,
			Column:  column,
			Getter:  getter,
		})
	}
	scalar := func(name, typ string) {
		add(name, typ, "", name, rowGetter(name, typ))
	}
	expand := func(name string, kind field.Kind) {
		for _, a := range kind.Attributes(name) {
			column, getter := attributeGetter(name, kind, a)
			add(a.Name, a.Type, "", column, getter)
		}
	}
	if s.HasID {
		scalar("id", s.IDType.Type())
	}
	for _, f := range s.Fields {
		expand(f.Name, f.Kind)
	}
	if s.HasStatus {
		scalar("statusName", field.TypeString)
		scalar("statusColor", field.TypeString)
	}
	for _, f := range s.Processed {
		expand(f.Name, f.Kind)
	}
	for _, f := range s.Expressions {
		expand(f.Name, f.Kind)
	}
	for _, j := range s.Joins {
		for _, f := range j.Fields {
			expand(f.PrefixName(), f.Kind)
		}
		for _, m := range j.Merges {
			scalar(m.Key, field.TypeString)
		}
		for _, d := range j.Defaults {
			scalar(d.Key, field.TypeString)
		}
	}
	for _, c := range s.Counts {
		for _, a := range c.Field.Kind.Attributes(c.Key) {
			column, getter := attributeGetter(c.Key, c.Field.Kind, a)
			if a.Name == c.Key {
				getter = c.getter()
			}
			add(a.Name, a.Type, "", column, getter)
		}
	}
	for _, sub := range s.SubRequests {
		add(sub.Name, sub.EntityType(), sub.Type, "", "")
	}
	return attrs
}

// attributeGetter returns the row column and the expression filling the
// attribute a expanded from the field base. The csv and date attributes
// are derived from the base column; the html and file ones are left to
// the process hook.
func attributeGetter(base string, kind field.Kind, a field.Attribute) (string, string) {
	switch {
	case a.Name == base:
		return base, rowGetter(base, a.Type)
	case kind == field.CSV && a.Name == base+"Parts":
		return base, fmt.Sprintf("row.Strings(%q)", base)
	case kind == field.CSV && a.Name == base+"Count":
		return base, fmt.Sprintf("len(row.Strings(%q))", base)
	case kind == field.Date && a.Name == base+"Date":
		return base, fmt.Sprintf("row.Date(%q)", base)
	case kind == field.Date && a.Name == base+"Full":
		return base, fmt.Sprintf("row.DateTime(%q)", base)
	default:
		return "", ""
	}
}

// rowGetter returns the expression reading a scalar column from a
// database.Row.
func rowGetter(name, typ string) string {
	switch typ {
	case field.TypeBool:
		return fmt.Sprintf("row.Bool(%q)", name)
	case field.TypeInt:
		return fmt.Sprintf("int(row.Int(%q))", name)
	case field.TypeFloat:
		return fmt.Sprintf("row.Float(%q)", name)
	case field.TypeString:
		return fmt.Sprintf("row.String(%q)", name)
	case field.TypeStrings:
		return fmt.Sprintf("row.Strings(%q)", name)
	case field.TypeAny:
		return fmt.Sprintf("row.Any(%q)", name)
	default:
		return ""
	}
}

// entityContext returns the template context of the Entity artifact.
func entityContext(p *partition, s *Structure, runtime, header string) map[string]any {
	return map[string]any{
		"header":     header,
		"package":    p.pkg,
		"runtime":    runtime,
		"name":       s.Schema,
		"table":      s.Table,
		"subTypes":   subTypes(s),
		"attributes": alignAttributes(entityAttributes(s)),
	}
}
