package soql

import (
	"errors"
	"time"

	"github.com/soqlet/soqlet/store"
)

// Operator identifies a leaf comparison operator.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpLike         Operator = "LIKE"
	OpContains     Operator = "CONTAINS"
	OpIn           Operator = "IN"
)

// Condition is a node of the parsed WHERE-clause tree. The tree is built
// bottom-up by ParseWhere and never mutated afterwards; it can be evaluated
// against any number of records.
type Condition interface {
	// Evaluate reports whether rec matches. now anchors relative date
	// literals; every record in one execution sees the same now.
	Evaluate(rec store.Record, now time.Time) bool
}

// AndCondition matches when every child matches. Children is never empty.
type AndCondition struct {
	Children []Condition
}

// OrCondition matches when any child matches. Children is never empty.
type OrCondition struct {
	Children []Condition
}

// Leaf is a single field/operator/value comparison, the terminal node of a
// condition tree.
type Leaf struct {
	Field  string
	Op     Operator
	Value  string   // scalar operand, quotes stripped
	Values []string // list operand, set for IN

	// Unparsed marks a condition no operator could be detected in. Such
	// a leaf matches nothing: a malformed condition degrades to "no
	// match" instead of failing the whole query.
	Unparsed bool
}

// OrderBy is the sort specification of a query.
type OrderBy struct {
	Field string
	Desc  bool
}

// Plan is the parsed form of one query string. It is built once per
// execution, consumed once, and discarded with the result.
type Plan struct {
	Fields  []string
	Object  string
	Where   Condition // nil when the query has no WHERE clause
	OrderBy *OrderBy
	Offset  *int
	Limit   *int
}

// Result holds the projected rows returned to the caller.
type Result struct {
	Results []store.Record `json:"results"`
}

var (
	// ErrMalformedQuery reports a query missing SELECT, FROM or the
	// object name.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrUnknownObject reports a FROM object absent from the store.
	ErrUnknownObject = errors.New("object not found")

	// ErrUnsupportedOperator reports a flat condition using an operator
	// outside ParseConditions' operator set.
	ErrUnsupportedOperator = errors.New("unsupported operator")
)
