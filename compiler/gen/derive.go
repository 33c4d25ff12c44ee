package gen

import (
	"strings"

	"github.com/syssam/schemagen/schema/field"
)

// FieldData is the generated-code metadata of a field. The same values
// are used by the Schema and the Entity artifacts.
type FieldData struct {
	Key     string // storage column
	Name    string // attribute name
	Text    string // upper-first name, suffix of the generated identifiers
	Type    string // Go type
	DocType string // type used in doc comments
	Default string // default literal of the type
	Param   string // parameter name
	Arg     string // "name type"
	ArgEdit string // "name *type", nil leaves the column unchanged
	Doc     string // "doctype name"
	DocEdit string // "*doctype name"
}

func fieldData(f *Field) FieldData {
	typ := f.Type()
	docType := field.DocTypeOf(typ)
	param := paramName(f.Name)
	return FieldData{
		Key:     f.Key,
		Name:    f.Name,
		Text:    upperFirst(f.Name),
		Type:    typ,
		DocType: docType,
		Default: field.DefaultOf(typ),
		Param:   param,
		Arg:     param + " " + typ,
		ArgEdit: param + " *" + typ,
		Doc:     docType + " " + param,
		DocEdit: "*" + docType + " " + param,
	}
}

func fieldsData(fields []*Field) []FieldData {
	data := make([]FieldData, 0, len(fields))
	for _, f := range fields {
		data = append(data, fieldData(f))
	}
	return data
}

// joinFields joins the selected value of every field with ", ". A non
// empty result starts with prefix.
func joinFields(fields []FieldData, value func(FieldData) string, prefix string) string {
	if len(fields) == 0 {
		return ""
	}
	list := make([]string, len(fields))
	for i, f := range fields {
		list[i] = value(f)
	}
	return prefix + strings.Join(list, ", ")
}

func (f FieldData) arg() string      { return f.Arg }
func (f FieldData) argEdit() string  { return f.ArgEdit }
func (f FieldData) param() string    { return f.Param }
