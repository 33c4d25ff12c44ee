package database

import "slices"

// Condition is one column comparison of a Query.
type Condition struct {
	Column   string
	Operator string
	Value    any
}

// Query collects the filters, order and page of a request. It carries no
// SQL of its own; the Database implementation renders it.
type Query struct {
	conditions []Condition
	search     []string
	searchText string
	orderBy    string
	orderAsc   bool
	offset     int
	limit      int
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Clone returns a copy of the query; a nil query clones to an empty one.
func (q *Query) Clone() *Query {
	if q == nil {
		return NewQuery()
	}
	c := *q
	c.conditions = slices.Clone(q.conditions)
	c.search = slices.Clone(q.search)
	return &c
}

// Add appends a condition.
func (q *Query) Add(column, operator string, value any) *Query {
	q.conditions = append(q.conditions, Condition{Column: column, Operator: operator, Value: value})
	return q
}

// Equal appends a "=" condition.
func (q *Query) Equal(column string, value any) *Query {
	return q.Add(column, "=", value)
}

// NotEqual appends a "<>" condition.
func (q *Query) NotEqual(column string, value any) *Query {
	return q.Add(column, "<>", value)
}

// In appends an "IN" condition.
func (q *Query) In(column string, values ...any) *Query {
	return q.Add(column, "IN", values)
}

// Search matches text against every given column.
func (q *Query) Search(text string, columns ...string) *Query {
	if text == "" {
		return q
	}
	q.searchText = text
	q.search = append(q.search, columns...)
	return q
}

// OrderBy sets the sort column.
func (q *Query) OrderBy(column string, asc bool) *Query {
	q.orderBy = column
	q.orderAsc = asc
	return q
}

// Paginate limits the result to one page.
func (q *Query) Paginate(offset, limit int) *Query {
	q.offset = offset
	q.limit = limit
	return q
}

// IsEmpty reports if the query has no conditions.
func (q *Query) IsEmpty() bool {
	return q == nil || (len(q.conditions) == 0 && q.searchText == "")
}

// Conditions returns the conditions in insertion order.
func (q *Query) Conditions() []Condition {
	if q == nil {
		return nil
	}
	return slices.Clone(q.conditions)
}

// SearchTerm returns the searched text and columns.
func (q *Query) SearchTerm() (string, []string) {
	if q == nil {
		return "", nil
	}
	return q.searchText, slices.Clone(q.search)
}

// Order returns the sort column and direction.
func (q *Query) Order() (string, bool) {
	if q == nil {
		return "", false
	}
	return q.orderBy, q.orderAsc
}

// Page returns the offset and limit; a zero limit means no limit.
func (q *Query) Page() (int, int) {
	if q == nil {
		return 0, 0
	}
	return q.offset, q.limit
}

// Select is one key/value pair of a select list.
type Select struct {
	Key   any    `json:"key"`
	Value string `json:"value"`
}
