package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/schemagen/compiler/load"
)

// Join holds the inclusion of another table's fields into a Structure.
type Join struct {
	Key      string
	Table    string
	AsTable  string
	OnTable  string
	LeftKey  string
	RightKey string
	Prefix   string
	Fields   []*Field
	Merges   []*Merge
	Defaults []*JoinDefault
}

// Merge is a string column concatenating joined columns.
type Merge struct {
	Key    string
	Fields []string
	Glue   string
}

// JoinDefault is a column that takes the first non null of its columns.
type JoinDefault struct {
	Key     string
	Columns []string
}

// NewJoin creates a join from its declaration.
func NewJoin(name string, def *load.Join) (*Join, error) {
	if def == nil || def.Table == "" {
		return nil, fmt.Errorf("join %q has no table", name)
	}
	j := &Join{
		Key:      def.Key,
		Table:    def.Table,
		AsTable:  def.AsTable,
		OnTable:  def.OnTable,
		LeftKey:  def.LeftKey,
		RightKey: def.RightKey,
		Prefix:   def.Prefix,
	}
	if j.LeftKey == "" {
		j.LeftKey = def.Key
	}
	if j.RightKey == "" {
		j.RightKey = def.Key
	}
	if j.LeftKey == "" || j.RightKey == "" {
		return nil, fmt.Errorf("join %q has no key", name)
	}
	for _, p := range def.Fields {
		f, err := NewField(p.Key, p.Value)
		if err != nil {
			return nil, fmt.Errorf("join %q: %w", name, err)
		}
		f.Prefix = j.Prefix
		j.Fields = append(j.Fields, f)
	}
	for _, p := range def.Merges {
		if p.Value == nil || len(p.Value.Fields) == 0 {
			return nil, fmt.Errorf("join %q: merge %q has no fields", name, p.Key)
		}
		j.Merges = append(j.Merges, &Merge{Key: p.Key, Fields: p.Value.Fields, Glue: p.Value.Glue})
	}
	for _, p := range def.Defaults {
		if len(p.Value) == 0 {
			return nil, fmt.Errorf("join %q: default %q has no columns", name, p.Key)
		}
		j.Defaults = append(j.Defaults, &JoinDefault{Key: p.Key, Columns: p.Value})
	}
	return j, nil
}

// Alias returns the name the joined table is referenced by.
func (j Join) Alias() string {
	if j.AsTable != "" {
		return j.AsTable
	}
	return j.Table
}

// Expression returns the join clause of the FROM expression.
func (j Join) Expression(mainTable string) string {
	onTable := j.OnTable
	if onTable == "" {
		onTable = mainTable
	}
	alias := j.Alias()
	table := j.Table
	if alias != j.Table {
		table += " AS " + alias
	}
	return fmt.Sprintf("LEFT JOIN %s ON (%s.%s = %s.%s)", table, alias, j.LeftKey, onTable, j.RightKey)
}

// Selects returns the selected columns of the join, in declaration order.
func (j Join) Selects() []string {
	alias := j.Alias()
	selects := make([]string, 0, len(j.Fields)+len(j.Merges)+len(j.Defaults))
	for _, f := range j.Fields {
		selects = append(selects, fmt.Sprintf("%s.%s AS %s", alias, f.Key, f.PrefixName()))
	}
	for _, m := range j.Merges {
		selects = append(selects, m.Expression(alias))
	}
	for _, d := range j.Defaults {
		selects = append(selects, d.Expression())
	}
	return selects
}

// Expression returns the select expression of the merge.
func (m Merge) Expression(alias string) string {
	cols := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		cols[i] = qualify(alias, f)
	}
	glue := strings.ReplaceAll(m.Glue, "'", "''")
	return fmt.Sprintf("CONCAT_WS('%s', %s) AS %s", glue, strings.Join(cols, ", "), m.Key)
}

// Expression returns the select expression of the default.
func (d JoinDefault) Expression() string {
	return fmt.Sprintf("COALESCE(%s) AS %s", strings.Join(d.Columns, ", "), d.Key)
}

// qualify prefixes a bare column with its table.
func qualify(table, column string) string {
	if strings.Contains(column, ".") {
		return column
	}
	return table + "." + column
}
