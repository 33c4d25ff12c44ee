package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/schemagen/compiler/load"
	"github.com/syssam/schemagen/database"
	"github.com/syssam/schemagen/schema/field"
)

// Count is an aggregate attribute computed with a correlated subquery that
// is joined onto the main table.
type Count struct {
	Field     *Field
	Key       string
	IsSum     bool
	Value     string
	Mult      int
	Table     string
	OnTable   string
	LeftKey   string
	RightKey  string
	NoDeleted bool
	Where     []Condition
}

// Condition is one "field operator value" filter of a Count.
type Condition struct {
	Field    string
	Operator string
	Value    string
}

// String returns the SQL of the condition.
func (c Condition) String() string {
	return c.Field + " " + c.Operator + " " + c.Value
}

// NewCount creates a count from its declaration. A where list whose length
// is not a multiple of three is rejected.
func NewCount(key string, def *load.Count) (*Count, error) {
	if def == nil || def.Table == "" {
		return nil, fmt.Errorf("count %q has no table", key)
	}
	f, err := NewField(key, &load.Field{Type: countKind(def.Type), Decimals: def.Decimals})
	if err != nil {
		return nil, fmt.Errorf("count %q: %w", key, err)
	}
	c := &Count{
		Field:     f,
		Key:       key,
		IsSum:     def.IsSum,
		Value:     def.Value,
		Mult:      def.Mult,
		Table:     def.Table,
		OnTable:   def.OnTable,
		LeftKey:   def.LeftKey,
		RightKey:  def.RightKey,
		NoDeleted: def.NoDeleted,
	}
	if c.Mult == 0 {
		c.Mult = 1
	}
	if c.LeftKey == "" {
		c.LeftKey = def.Key
	}
	if c.RightKey == "" {
		c.RightKey = def.Key
	}
	switch {
	case c.LeftKey == "" || c.RightKey == "":
		return nil, fmt.Errorf("count %q has no key", key)
	case c.IsSum && c.Value == "":
		return nil, fmt.Errorf("count %q is a sum without a value", key)
	case len(def.Where)%3 != 0:
		return nil, fmt.Errorf("count %q: where list of length %d is not made of (field, operator, value) triples", key, len(def.Where))
	}
	for i := 0; i < len(def.Where); i += 3 {
		c.Where = append(c.Where, Condition{Field: def.Where[i], Operator: def.Where[i+1], Value: def.Where[i+2]})
	}
	return c, nil
}

func countKind(kind string) string {
	if kind == "" {
		return field.Number.String()
	}
	return kind
}

// Expression returns the join clause of the count subquery.
func (c Count) Expression(asTable, mainKey string) string {
	what := "COUNT(*)"
	if c.IsSum {
		what = fmt.Sprintf("SUM(%d * %s)", c.Mult, c.Value)
	}
	onTable := c.OnTable
	if onTable == "" {
		onTable = mainKey
	}
	groupKey := c.Table + "." + c.RightKey
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s, %s AS %s FROM %s", groupKey, what, c.Key, c.Table)
	if where := c.where(); where != "" {
		b.WriteString(" ")
		b.WriteString(where)
	}
	fmt.Fprintf(&b, " GROUP BY %s", groupKey)
	return fmt.Sprintf("LEFT JOIN (%s) AS %s ON (%s.%s = %s.%s)", b.String(), asTable, asTable, c.LeftKey, onTable, c.RightKey)
}

func (c Count) where() string {
	query := make([]string, 0, len(c.Where)+1)
	if c.NoDeleted {
		query = append(query, "isDeleted = 0")
	}
	for _, w := range c.Where {
		query = append(query, w.String())
	}
	if len(query) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(query, " AND ")
}

// Select returns the selected column of the count.
func (c Count) Select(joinKey string) string {
	return joinKey + "." + c.Key
}

// ValueOf materializes the count from a result row the way the generated
// Entity does. A missing column is 0; float counts are scaled down by
// their decimals and price counts are converted from cents.
func (c Count) ValueOf(row database.Row) any {
	switch c.Field.Kind {
	case field.Float, field.Price:
		return row.Scaled(c.Key, c.scale())
	default:
		return int(row.Int(c.Key))
	}
}

// scale returns the decimal places the stored value is shifted by.
func (c Count) scale() int {
	if c.Field.Kind == field.Price {
		return 2
	}
	return c.Field.Decimals
}

// getter returns the expression reading the count in the generated Fill.
func (c Count) getter() string {
	switch c.Field.Kind {
	case field.Float, field.Price:
		return fmt.Sprintf("row.Scaled(%q, %d)", c.Key, c.scale())
	default:
		return rowGetter(c.Key, c.Field.Type())
	}
}
