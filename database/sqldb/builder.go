package sqldb

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/schemagen/database"
)

// operators are the condition operators accepted in a Query.
var operators = map[string]bool{
	"=": true, "<>": true, "!=": true,
	"<": true, "<=": true, ">": true, ">=": true,
	"LIKE": true, "NOT LIKE": true,
	"IN": true, "NOT IN": true,
}

// builder renders a statement and collects its arguments.
type builder struct {
	strings.Builder
	args     []any
	postgres bool
}

// arg writes the placeholder of a new argument.
func (b *builder) arg(v any) {
	b.args = append(b.args, v)
	if b.postgres {
		b.WriteString("$" + strconv.Itoa(len(b.args)))
		return
	}
	b.WriteString("?")
}

// where writes the WHERE clause of the conditions and search of a query.
func (b *builder) where(query *database.Query) error {
	conds := query.Conditions()
	text, columns := query.SearchTerm()
	if len(conds) == 0 && (text == "" || len(columns) == 0) {
		return nil
	}
	b.WriteString(" WHERE ")
	for i, c := range conds {
		if i > 0 {
			b.WriteString(" AND ")
		}
		if err := b.condition(c); err != nil {
			return err
		}
	}
	if text != "" && len(columns) > 0 {
		if len(conds) > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString("(")
		for i, c := range columns {
			if i > 0 {
				b.WriteString(" OR ")
			}
			b.WriteString(c)
			b.WriteString(" LIKE ")
			b.arg("%" + text + "%")
		}
		b.WriteString(")")
	}
	return nil
}

func (b *builder) condition(c database.Condition) error {
	op := strings.ToUpper(c.Operator)
	if !operators[op] {
		return fmt.Errorf("sqldb: unsupported operator %q on %s", c.Operator, c.Column)
	}
	switch op {
	case "IN", "NOT IN":
		values, ok := c.Value.([]any)
		if !ok {
			return fmt.Errorf("sqldb: %s on %s expects a list, got %T", op, c.Column, c.Value)
		}
		if len(values) == 0 {
			if op == "IN" {
				b.WriteString("1 = 0")
			} else {
				b.WriteString("1 = 1")
			}
			return nil
		}
		b.WriteString(c.Column + " " + op + " (")
		for i, v := range values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.arg(v)
		}
		b.WriteString(")")
	case "=", "<>", "!=":
		if c.Value == nil {
			if op == "=" {
				b.WriteString(c.Column + " IS NULL")
			} else {
				b.WriteString(c.Column + " IS NOT NULL")
			}
			return nil
		}
		fallthrough
	default:
		b.WriteString(c.Column + " " + op + " ")
		b.arg(c.Value)
	}
	return nil
}

func (b *builder) order(query *database.Query) {
	column, asc := query.Order()
	if column == "" {
		return
	}
	b.WriteString(" ORDER BY " + column)
	if asc {
		b.WriteString(" ASC")
	} else {
		b.WriteString(" DESC")
	}
}

func (b *builder) page(query *database.Query) {
	offset, limit := query.Page()
	if limit <= 0 {
		return
	}
	b.WriteString(" LIMIT " + strconv.Itoa(limit))
	if offset > 0 {
		b.WriteString(" OFFSET " + strconv.Itoa(offset))
	}
}

func sortedColumns(fields database.Fields) []string {
	columns := make([]string, 0, len(fields))
	for c := range fields {
		columns = append(columns, c)
	}
	slices.Sort(columns)
	return columns
}
