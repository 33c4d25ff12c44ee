package gen

import (
	"slices"
	"strings"

	"github.com/syssam/schemagen/schema/field"
)

// SubType is a sub request whose entity type is generated elsewhere.
type SubType struct {
	Name string
	Type string
}

// fieldsSkipped are set by the generated code itself, never by the caller.
var fieldsSkipped = []string{"createdTime", "createdUser", "modifiedTime", "modifiedUser", "isDeleted"}

// editableFields returns the fields a caller sets on create and edit.
func editableFields(s *Structure) []FieldData {
	var fields []*Field
	for _, f := range s.Fields {
		if !f.IsID && !slices.Contains(fieldsSkipped, f.Key) {
			fields = append(fields, f)
		}
	}
	return fieldsData(fields)
}

func subTypes(s *Structure) []SubType {
	var types []SubType
	for _, sub := range s.SubRequests {
		if !sub.IsCollection() {
			types = append(types, SubType{Name: sub.Name, Type: sub.Type})
		}
	}
	return types
}

// schemaContext returns the template context of the Schema artifact.
func schemaContext(p *partition, s *Structure, runtime, header string) map[string]any {
	idType := field.ID
	if s.HasID {
		idType = s.IDType
	}
	var (
		idGoType    = idType.Type()
		idDocType   = idType.DocType()
		fields      = editableFields(s)
		uniques     = fieldsData(s.Uniques())
		parents     = fieldsData(s.Parents())
		subs        = subTypes(s)
		editParents []FieldData
		nameText    string
		search      []FieldData
	)
	if s.HasPositions {
		editParents = parents
	}
	for _, f := range s.Fields {
		if f.Key == s.NameKey {
			nameText = upperFirst(f.Name)
		}
		switch f.Kind {
		case field.Text, field.HTML, field.CSV:
			search = append(search, fieldData(f))
		}
	}
	editType, editDocType := "*database.Query", "*database.Query"
	if s.HasID {
		editType += "|" + idGoType
		editDocType += "|" + idDocType
	}
	return map[string]any{
		"header":          header,
		"package":         p.pkg,
		"runtime":         runtime,
		"name":            s.Schema,
		"table":           s.Table,
		"column":          s.Schema + "Column",
		"entity":          s.Schema + "Entity",
		"from":            s.From(),
		"selects":         s.Selects(),
		"hasID":           s.HasID,
		"idKey":           s.IDKey,
		"idName":          s.IDName,
		"idParam":         paramName(s.IDName),
		"idType":          idGoType,
		"idDocType":       idDocType,
		"idDefault":       field.DefaultOf(idGoType),
		"idText":          upperFirst(s.IDName),
		"editType":        editType,
		"editDocType":     editDocType,
		"hasName":         s.NameKey != "" && !slices.ContainsFunc(uniques, func(f FieldData) bool { return f.Key == s.NameKey }),
		"nameKey":         s.NameKey,
		"nameText":        nameText,
		"hasSelect":       s.NameKey != "",
		"hasPositions":    s.HasPositions,
		"hasTimestamps":   s.HasTimestamps,
		"hasUsers":        s.HasUsers,
		"hasFilters":      s.HasFilters,
		"hasEncrypt":      s.HasEncrypt,
		"hasAutoInc":      s.HasAutoInc,
		"canCreate":       s.CanCreate,
		"canEdit":         s.CanEdit,
		"canReplace":      s.CanEdit && s.HasID && !s.HasAutoInc,
		"canDelete":       s.CanDelete,
		"canRemove":       s.CanRemove,
		"processEntity":   len(subs) > 0 || len(s.Processed) > 0 || s.HasStatus,
		"subTypes":        subs,
		"hasProcessed":    len(s.Processed) > 0,
		"fields":          fields,
		"fieldsList":      joinFields(fields, FieldData.arg, ", "),
		"fieldsEditList":  joinFields(fields, FieldData.argEdit, ", "),
		"fieldsParamList": joinFields(fields, FieldData.param, ", "),
		"uniques":         uniques,
		"parents":         parents,
		"editParents":     editParents,
		"parentsList":     joinFields(parents, FieldData.param, ""),
		"parentsArgList":  joinFields(parents, FieldData.arg, ""),
		"parentsDefList":  joinFields(parents, FieldData.arg, ", "),
		"parentsEditList": joinFields(editParents, FieldData.arg, ", "),
		"hasParents":      len(parents) > 0,
		"hasEditParents":  s.HasPositions && len(parents) > 0,
		"hasMainQuery":    s.HasFilters || len(parents) > 0,
		"hasStatus":       s.HasStatus,
		"searchFields":    search,
	}
}

// finishSchema applies the text passes of the rendered Schema artifact.
func finishSchema(contents string) string {
	contents = alignParams(contents)
	return strings.ReplaceAll(contents, "(, ", "(")
}
