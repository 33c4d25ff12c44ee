package gen

import (
	"github.com/syssam/schemagen/compiler/load"
	"github.com/syssam/schemagen/schema/field"
)

// Field holds the declared shape of one column.
type Field struct {
	// Key is the storage column of the field.
	Key string
	// Name is the attribute name; it defaults to the key.
	Name string
	// Prefix is prepended to the name of joined fields.
	Prefix string
	// Kind drives the generated types.
	Kind field.Kind
	// IsID marks the primary key.
	IsID bool
	// IsUnique marks a unique column.
	IsUnique bool
	// IsParent marks a key to a parent row.
	IsParent bool
	// Decimals is the numeric precision of float fields.
	Decimals int
	// Expression is the SQL expression of expression fields.
	Expression string
}

// NewField creates a field from its declaration.
func NewField(key string, def *load.Field) (*Field, error) {
	if def == nil {
		def = &load.Field{}
	}
	kind, err := field.ParseKind(def.Type)
	if err != nil {
		return nil, err
	}
	f := &Field{
		Key:        key,
		Name:       def.Name,
		Kind:       kind,
		IsID:       def.IsID,
		IsUnique:   def.IsUnique,
		IsParent:   def.IsParent,
		Decimals:   def.Decimals,
		Expression: def.Expression,
	}
	if f.Name == "" {
		f.Name = key
	}
	return f, nil
}

// PrefixName returns the attribute name including the join prefix.
func (f Field) PrefixName() string {
	if f.Prefix == "" {
		return f.Name
	}
	return f.Prefix + upperFirst(f.Name)
}

// Type returns the Go scalar type of the field.
func (f Field) Type() string { return f.Kind.Type() }

// IsFile reports if the field holds a file path.
func (f Field) IsFile() bool { return f.Kind == field.File }
