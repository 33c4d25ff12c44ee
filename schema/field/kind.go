package field

import (
	"fmt"
	"strings"
)

// A Kind represents the declared kind of a column. The set is closed:
// every Kind drives the scalar type, the default literal and the entity
// attribute expansion of a field.
type Kind uint8

// List of field kinds.
const (
	KindInvalid Kind = iota
	Boolean
	ID
	Number
	Float
	Price
	Date
	JSON
	CSV
	HTML
	File
	Text
	endKinds
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	Boolean:     "boolean",
	ID:          "id",
	Number:      "number",
	Float:       "float",
	Price:       "price",
	Date:        "date",
	JSON:        "json",
	CSV:         "csv",
	HTML:        "html",
	File:        "file",
	Text:        "text",
}

// Go scalar types used by the generated code.
const (
	TypeBool    = "bool"
	TypeInt     = "int"
	TypeFloat   = "float64"
	TypeString  = "string"
	TypeAny     = "any"
	TypeStrings = "[]string"
)

// ParseKind returns the Kind with the given name. An empty name is a Text
// field; an unknown name is an error.
func ParseKind(name string) (Kind, error) {
	if name == "" {
		return Text, nil
	}
	for k := Boolean; k < endKinds; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("field: unknown kind %q", name)
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < endKinds {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Valid reports if the kind is one of the declared kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < endKinds
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Type returns the Go scalar type used to store a value of this kind.
func (k Kind) Type() string {
	switch k {
	case Boolean:
		return TypeBool
	case ID, Number, Date:
		return TypeInt
	case Float, Price:
		return TypeFloat
	case JSON:
		return TypeAny
	case CSV, HTML, File, Text:
		return TypeString
	default:
		panic(fmt.Sprintf("field: invalid kind %d", k))
	}
}

// DocType returns the human readable type used in doc comments.
func (k Kind) DocType() string {
	return DocTypeOf(k.Type())
}

// Default returns the default literal of the kind.
func (k Kind) Default() string {
	return DefaultOf(k.Type())
}

// IsKey reports if values of this kind can reference another row.
func (k Kind) IsKey() bool {
	return k == ID || k == Number
}

// Attribute is one entity attribute derived from a field.
type Attribute struct {
	Name string
	Type string
}

// Attributes expands a field named name into its entity attributes.
func (k Kind) Attributes(name string) []Attribute {
	switch k {
	case Boolean:
		return []Attribute{{name, TypeBool}}
	case ID, Number:
		return []Attribute{{name, TypeInt}}
	case Float, Price:
		return []Attribute{{name, TypeFloat}}
	case Date:
		return []Attribute{
			{name, TypeInt},
			{name + "Date", TypeString},
			{name + "Full", TypeString},
		}
	case JSON:
		return []Attribute{{name, TypeAny}}
	case CSV:
		return []Attribute{
			{name, TypeString},
			{name + "Parts", TypeStrings},
			{name + "Count", TypeInt},
		}
	case HTML:
		return []Attribute{
			{name, TypeString},
			{name + "Html", TypeString},
		}
	case File:
		return []Attribute{
			{name, TypeString},
			{name + "Url", TypeString},
			{name + "Thumb", TypeString},
		}
	case Text:
		return []Attribute{{name, TypeString}}
	default:
		panic(fmt.Sprintf("field: invalid kind %d", k))
	}
}

// DocTypeOf converts a Go type to the type name used in doc comments.
func DocTypeOf(typ string) string {
	switch typ {
	case TypeBool:
		return "boolean"
	case TypeInt:
		return "integer"
	default:
		return typ
	}
}

// DefaultOf returns the default literal of a Go type. Types without an
// empty literal default to nil.
func DefaultOf(typ string) string {
	switch {
	case typ == TypeBool:
		return "false"
	case typ == TypeInt:
		return "0"
	case typ == TypeFloat:
		return "0.0"
	case typ == TypeString:
		return `""`
	case typ == TypeAny:
		return "[]any{}"
	case strings.HasPrefix(typ, "[]"), strings.HasPrefix(typ, "map["):
		return typ + "{}"
	default:
		return "nil"
	}
}
