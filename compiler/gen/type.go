package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/schemagen/compiler/load"
	"github.com/syssam/schemagen/schema/field"
)

// Structure is the declarative model of one table. It is built from a
// definition at the start of a generation run and never modified.
type Structure struct {
	// Key is the definition key.
	Key string
	// Schema is the type name used by the generated artifacts.
	Schema string
	// Table is the storage table.
	Table string

	HasID      bool
	IDKey      string
	IDName     string
	IDType     field.Kind
	NameKey    string
	HasAutoInc bool

	// Fields holds the declared fields, in declaration order, followed by
	// the fields implied by the structural flags.
	Fields      []*Field
	Processed   []*Field
	Expressions []*Field
	Joins       []*Join
	Counts      []*Count
	SubRequests []*SubRequest

	HasStatus     bool
	HasPositions  bool
	HasTimestamps bool
	HasUsers      bool
	HasFilters    bool
	HasEncrypt    bool
	CanCreate     bool
	CanEdit       bool
	CanDelete     bool
	CanRemove     bool
	FromFramework bool
}

// SubRequest is a collection attribute filled by a nested request.
type SubRequest struct {
	Name string
	Type string
}

// IsCollection reports if the declared type already is a collection type.
func (s SubRequest) IsCollection() bool {
	return strings.ContainsAny(s.Type, "[<")
}

// EntityType returns the Go type of the sub request attribute.
func (s SubRequest) EntityType() string {
	if s.IsCollection() {
		return s.Type
	}
	return "[]*" + s.Type + "Entity"
}

// NewStructure creates the structure of the given definition. A malformed
// definition returns a *SchemaError.
func NewStructure(key string, def *load.Definition) (*Structure, error) {
	if def == nil {
		return nil, NewSchemaError(key, "", "empty definition", nil)
	}
	s := &Structure{
		Key:           key,
		Schema:        def.Name,
		Table:         def.Table,
		NameKey:       def.NameKey,
		HasStatus:     def.HasStatus,
		HasPositions:  def.HasPositions,
		HasTimestamps: def.HasTimestamps,
		HasUsers:      def.HasUsers,
		HasFilters:    def.HasFilters,
		HasEncrypt:    def.HasEncrypt,
		CanCreate:     boolOr(def.CanCreate, true),
		CanEdit:       boolOr(def.CanEdit, true),
		CanDelete:     def.CanDelete,
		CanRemove:     def.CanRemove,
		FromFramework: def.FromFramework,
	}
	if s.Schema == "" {
		s.Schema = inflect.Camelize(inflect.Singularize(key))
	}
	if s.Table == "" {
		return nil, NewSchemaError(key, "", "missing table name", nil)
	}
	if err := ValidSchemaName(s.Schema); err != nil {
		return nil, NewSchemaError(key, "", "invalid name", err)
	}
	declared := make(map[string]bool, len(def.Fields))
	for _, p := range def.Fields {
		f, err := NewField(p.Key, p.Value)
		if err != nil {
			return nil, NewSchemaError(key, p.Key, "invalid field", err)
		}
		if err := s.addField(f); err != nil {
			return nil, NewSchemaError(key, p.Key, err.Error(), nil)
		}
		declared[f.Key] = true
	}
	for _, f := range implicitFields(s) {
		if !declared[f.Key] {
			s.Fields = append(s.Fields, f)
			declared[f.Key] = true
		}
	}
	if s.NameKey != "" && !declared[s.NameKey] {
		return nil, NewSchemaError(key, s.NameKey, "name key is not a declared field", nil)
	}
	s.HasAutoInc = boolOr(def.HasAutoInc, s.HasID && s.IDType == field.ID)

	for _, p := range def.Processed {
		f, err := NewField(p.Key, p.Value)
		if err != nil {
			return nil, NewSchemaError(key, p.Key, "invalid processed field", err)
		}
		s.Processed = append(s.Processed, f)
	}
	for _, p := range def.Expressions {
		f, err := NewField(p.Key, p.Value)
		if err != nil {
			return nil, NewSchemaError(key, p.Key, "invalid expression", err)
		}
		if f.Expression == "" {
			return nil, NewSchemaError(key, p.Key, "expression field without an expression", nil)
		}
		s.Expressions = append(s.Expressions, f)
	}
	for _, p := range def.Joins {
		j, err := NewJoin(p.Key, p.Value)
		if err != nil {
			return nil, NewSchemaError(key, p.Key, "invalid join", err)
		}
		s.Joins = append(s.Joins, j)
	}
	for _, p := range def.Counts {
		c, err := NewCount(p.Key, p.Value)
		if err != nil {
			return nil, NewSchemaError(key, p.Key, "invalid count", err)
		}
		s.Counts = append(s.Counts, c)
	}
	for _, p := range def.SubRequests {
		if p.Value == nil || p.Value.Type == "" {
			return nil, NewSchemaError(key, p.Key, "sub request without a type", nil)
		}
		s.SubRequests = append(s.SubRequests, &SubRequest{Name: p.Key, Type: p.Value.Type})
	}
	return s, nil
}

// addField adds a declared field, checking the key relations.
func (s *Structure) addField(f *Field) error {
	switch {
	case f.IsID && s.HasID:
		return fmt.Errorf("second primary key (already %q)", s.IDKey)
	case f.IsParent && !f.Kind.IsKey():
		return fmt.Errorf("parent field of kind %s is not a key", f.Kind)
	case f.IsID:
		s.HasID = true
		s.IDKey = f.Key
		s.IDName = f.Name
		s.IDType = f.Kind
	}
	s.Fields = append(s.Fields, f)
	return nil
}

// implicitFields returns the fields implied by the structural flags.
func implicitFields(s *Structure) []*Field {
	var fields []*Field
	if s.HasPositions {
		fields = append(fields, &Field{Key: "position", Name: "position", Kind: field.Number})
	}
	if s.HasTimestamps {
		fields = append(fields,
			&Field{Key: "createdTime", Name: "createdTime", Kind: field.Date},
			&Field{Key: "modifiedTime", Name: "modifiedTime", Kind: field.Date},
		)
	}
	if s.HasUsers {
		fields = append(fields,
			&Field{Key: "createdUser", Name: "createdUser", Kind: field.Number},
			&Field{Key: "modifiedUser", Name: "modifiedUser", Kind: field.Number},
		)
	}
	if s.CanDelete {
		fields = append(fields, &Field{Key: "isDeleted", Name: "isDeleted", Kind: field.Boolean})
	}
	return fields
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Uniques returns the unique fields.
func (s Structure) Uniques() []*Field {
	return s.fieldsBy(func(f *Field) bool { return f.IsUnique })
}

// Parents returns the fields that reference a parent row.
func (s Structure) Parents() []*Field {
	return s.fieldsBy(func(f *Field) bool { return f.IsParent })
}

func (s Structure) fieldsBy(fn func(*Field) bool) []*Field {
	var fields []*Field
	for _, f := range s.Fields {
		if fn(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// CountAlias returns the alias of the subquery of the given count.
func (s Structure) CountAlias(c *Count) string {
	return c.Key + "Join"
}

// From returns the FROM expression of the table with every join and
// count subquery.
func (s Structure) From() string {
	parts := []string{s.Table}
	for _, j := range s.Joins {
		parts = append(parts, j.Expression(s.Table))
	}
	for _, c := range s.Counts {
		parts = append(parts, c.Expression(s.CountAlias(c), s.Table))
	}
	return strings.Join(parts, " ")
}

// Selects returns the selected columns, aliased by attribute name. The
// primary key is also selected as id unless that is already its name.
func (s Structure) Selects() []string {
	var selects []string
	for _, f := range s.Fields {
		col := s.Table + "." + f.Key
		if f.Key != f.Name {
			col += " AS " + f.Name
		}
		selects = append(selects, col)
		if f.IsID && f.Name != "id" {
			selects = append(selects, s.Table+"."+f.Key+" AS id")
		}
	}
	for _, e := range s.Expressions {
		selects = append(selects, fmt.Sprintf("%s AS %s", e.Expression, e.Key))
	}
	for _, j := range s.Joins {
		selects = append(selects, j.Selects()...)
	}
	for _, c := range s.Counts {
		selects = append(selects, c.Select(s.CountAlias(c)))
	}
	return selects
}

// ValidSchemaName reports if name can be used as the prefix of the
// generated type names.
func ValidSchemaName(name string) error {
	switch {
	case name == "":
		return errors.New("schema name cannot be empty")
	case strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("schema name %q contains path characters", name)
	case !token.IsIdentifier(name):
		return fmt.Errorf("schema name %q is not a valid Go identifier", name)
	case !token.IsExported(name):
		return fmt.Errorf("schema name %q must start with an upper case letter", name)
	}
	return nil
}
