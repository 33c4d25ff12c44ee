// Package load decodes table definition files into the ordered Definition
// values consumed by the generator.
package load

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition represents one declared table, as decoded from a definition file.
type Definition struct {
	Name          string                `yaml:"name,omitempty"`
	Table         string                `yaml:"table,omitempty"`
	NameKey       string                `yaml:"nameKey,omitempty"`
	Fields        Ordered[*Field]       `yaml:"fields,omitempty"`
	Processed     Ordered[*Field]       `yaml:"processed,omitempty"`
	Expressions   Ordered[*Field]       `yaml:"expressions,omitempty"`
	Joins         Ordered[*Join]        `yaml:"joins,omitempty"`
	Counts        Ordered[*Count]       `yaml:"counts,omitempty"`
	SubRequests   Ordered[*SubRequest]  `yaml:"subRequests,omitempty"`
	HasStatus     bool                  `yaml:"hasStatus,omitempty"`
	HasPositions  bool                  `yaml:"hasPositions,omitempty"`
	HasTimestamps bool                  `yaml:"hasTimestamps,omitempty"`
	HasUsers      bool                  `yaml:"hasUsers,omitempty"`
	HasFilters    bool                  `yaml:"hasFilters,omitempty"`
	HasEncrypt    bool                  `yaml:"hasEncrypt,omitempty"`
	HasAutoInc    *bool                 `yaml:"hasAutoInc,omitempty"`
	CanCreate     *bool                 `yaml:"canCreate,omitempty"`
	CanEdit       *bool                 `yaml:"canEdit,omitempty"`
	CanDelete     bool                  `yaml:"canDelete,omitempty"`
	CanRemove     bool                  `yaml:"canRemove,omitempty"`
	FromFramework bool                  `yaml:"fromFramework,omitempty"`
}

// Field represents one declared column. The map key of the field is its
// storage key.
type Field struct {
	Type       string `yaml:"type,omitempty"`
	Name       string `yaml:"name,omitempty"`
	IsID       bool   `yaml:"isID,omitempty"`
	IsUnique   bool   `yaml:"isUnique,omitempty"`
	IsParent   bool   `yaml:"isParent,omitempty"`
	Decimals   int    `yaml:"decimals,omitempty"`
	Expression string `yaml:"expression,omitempty"`
}

// Join represents the inclusion of another table's fields.
type Join struct {
	Key      string              `yaml:"key,omitempty"`
	Table    string              `yaml:"table,omitempty"`
	AsTable  string              `yaml:"asTable,omitempty"`
	OnTable  string              `yaml:"onTable,omitempty"`
	LeftKey  string              `yaml:"leftKey,omitempty"`
	RightKey string              `yaml:"rightKey,omitempty"`
	Prefix   string              `yaml:"prefix,omitempty"`
	Fields   Ordered[*Field]     `yaml:"fields,omitempty"`
	Merges   Ordered[*Merge]     `yaml:"merges,omitempty"`
	Defaults Ordered[[]string]   `yaml:"defaults,omitempty"`
}

// Merge concatenates joined columns into a single string column.
type Merge struct {
	Fields []string `yaml:"fields,omitempty"`
	Glue   string   `yaml:"glue,omitempty"`
}

// Count represents an aggregate over another table. The map key of the
// count is the name of the aggregate column.
type Count struct {
	Type      string   `yaml:"type,omitempty"`
	Decimals  int      `yaml:"decimals,omitempty"`
	Key       string   `yaml:"key,omitempty"`
	IsSum     bool     `yaml:"isSum,omitempty"`
	Value     string   `yaml:"value,omitempty"`
	Mult      int      `yaml:"mult,omitempty"`
	Table     string   `yaml:"table,omitempty"`
	OnTable   string   `yaml:"onTable,omitempty"`
	LeftKey   string   `yaml:"leftKey,omitempty"`
	RightKey  string   `yaml:"rightKey,omitempty"`
	NoDeleted bool     `yaml:"noDeleted,omitempty"`
	Where     []string `yaml:"where,omitempty"`
}

// SubRequest represents a nested collection attached to each row.
type SubRequest struct {
	Type string `yaml:"type,omitempty"`
}

// Entry is one definition as found in a source, kept undecoded so that a
// malformed definition only affects itself.
type Entry struct {
	Key           string
	Source        string
	FromFramework bool
	node          *yaml.Node
}

// NewEntry returns an entry holding the given definition.
func NewEntry(key string, def *Definition) (*Entry, error) {
	node := &yaml.Node{}
	if err := node.Encode(def); err != nil {
		return nil, fmt.Errorf("load: encode definition %q: %w", key, err)
	}
	return &Entry{Key: key, FromFramework: def.FromFramework, node: node}, nil
}

// Definition decodes the entry.
func (e *Entry) Definition() (*Definition, error) {
	def := &Definition{}
	if err := e.node.Decode(def); err != nil {
		return nil, fmt.Errorf("load: definition %q (%s): %w", e.Key, e.Source, err)
	}
	def.FromFramework = def.FromFramework || e.FromFramework
	return def, nil
}
