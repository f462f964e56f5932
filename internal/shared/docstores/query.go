package docstores

import (
	"fmt"
	"regexp"
)

type Operator string

const (
	OpEqual          Operator = "="
	OpLessThan       Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreaterThan    Operator = ">"
	OpGreaterOrEqual Operator = ">="
	// OpContains matches documents whose list field holds the string value.
	OpContains Operator = "contains"
)

func (o Operator) valid() bool {
	switch o {
	case OpEqual, OpLessThan, OpLessOrEqual, OpGreaterThan, OpGreaterOrEqual, OpContains:
		return true
	}
	return false
}

func (o Operator) inequality() bool {
	return o.valid() && o != OpEqual && o != OpContains
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Filter struct {
	Field string
	Op    Operator
	Value any
}

type Order struct {
	Field      string
	Descending bool
}

type MoreResults int

const (
	MoreResultsAfterLimit MoreResults = iota + 1
	NoMoreResults
)

func (m MoreResults) String() string {
	switch m {
	case MoreResultsAfterLimit:
		return "MORE_RESULTS_AFTER_LIMIT"
	case NoMoreResults:
		return "NO_MORE_RESULTS"
	default:
		return "UNSPECIFIED"
	}
}

// Cursor is an opaque continuation token returned in Page.EndCursor.
type Cursor string

type Page struct {
	Documents   []*Document
	MoreResults MoreResults
	EndCursor   Cursor
}

// Query describes a single-kind query. Builder methods return a modified copy,
// so a base query can be reused to build one query per page.
type Query struct {
	namespace string
	kind      string
	filters   []Filter
	orders    []Order
	limit     int
	cursor    Cursor
	keysOnly  bool
}

func NewQuery(namespace, kind string) *Query {
	return &Query{namespace: namespace, kind: kind}
}

func (q *Query) clone() *Query {
	c := *q
	c.filters = append([]Filter(nil), q.filters...)
	c.orders = append([]Order(nil), q.orders...)
	return &c
}

func (q *Query) Filter(field string, op Operator, value any) *Query {
	c := q.clone()
	c.filters = append(c.filters, Filter{Field: field, Op: op, Value: value})
	return c
}

func (q *Query) Order(field string, descending bool) *Query {
	c := q.clone()
	c.orders = append(c.orders, Order{Field: field, Descending: descending})
	return c
}

// Limit sets the page size. Zero means unbounded.
func (q *Query) Limit(n int) *Query {
	c := q.clone()
	c.limit = n
	return c
}

func (q *Query) Start(cursor Cursor) *Query {
	c := q.clone()
	c.cursor = cursor
	return c
}

func (q *Query) KeysOnly() *Query {
	c := q.clone()
	c.keysOnly = true
	return c
}

func (q *Query) Namespace() string { return q.namespace }
func (q *Query) Kind() string { return q.kind }
func (q *Query) Filters() []Filter { return q.filters }
func (q *Query) Orders() []Order { return q.orders }
func (q *Query) PageSize() int { return q.limit }
func (q *Query) StartCursor() Cursor { return q.cursor }
func (q *Query) IsKeysOnly() bool { return q.keysOnly }

func (q *Query) validate() error {
	if err := IncompleteKey(q.namespace, q.kind).validate(false); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	if q.limit < 0 {
		return fmt.Errorf("%w: negative limit %d", ErrInvalidQuery, q.limit)
	}
	for _, f := range q.filters {
		if !fieldPattern.MatchString(f.Field) {
			return fmt.Errorf("%w: filter field %q", ErrInvalidQuery, f.Field)
		}
		if !f.Op.valid() {
			return fmt.Errorf("%w: filter operator %q", ErrInvalidQuery, f.Op)
		}
		if f.Value == nil {
			return fmt.Errorf("%w: nil value for filter on %q", ErrInvalidQuery, f.Field)
		}
		if _, ok := f.Value.(string); f.Op == OpContains && !ok {
			return fmt.Errorf("%w: contains filter on %q needs a string", ErrInvalidQuery, f.Field)
		}
	}
	for _, o := range q.orders {
		if !fieldPattern.MatchString(o.Field) {
			return fmt.Errorf("%w: order field %q", ErrInvalidQuery, o.Field)
		}
	}
	return nil
}

// inequalityField returns the first field carrying a range filter.
func (q *Query) inequalityField() (string, bool) {
	for _, f := range q.filters {
		if f.Op.inequality() {
			return f.Field, true
		}
	}
	return "", false
}
