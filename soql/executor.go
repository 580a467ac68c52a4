package soql

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/soqlet/soqlet/store"
)

// Engine executes queries against a record store. It holds no mutable
// state: the store and the clock are fixed at construction and every
// Execute call builds and discards its own plan.
type Engine struct {
	store store.Store
	now   func() time.Time
}

// New creates an engine over st using the wall clock for date literals.
func New(st store.Store) *Engine {
	return NewWithClock(st, time.Now)
}

// NewWithClock creates an engine with an explicit clock. Tests pin the
// clock to make date-literal queries deterministic.
func NewWithClock(st store.Store, now func() time.Time) *Engine {
	return &Engine{store: st, now: now}
}

// Execute runs one query and returns the projected, sorted, paginated
// rows. The query may be percent-encoded; it is decoded before parsing.
//
// Any failure - malformed query, unknown object, or an internal parse
// error - is returned as a single execution error wrapping the cause.
// Callers classify with errors.Is against ErrMalformedQuery and
// ErrUnknownObject.
func (e *Engine) Execute(query string) (*Result, error) {
	res, err := e.execute(query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return res, nil
}

func (e *Engine) execute(query string) (*Result, error) {
	plan, err := Parse(decodeQuery(query))
	if err != nil {
		return nil, err
	}

	col, ok := e.store.Lookup(plan.Object)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObject, plan.Object)
	}

	// One now per execution: every record's date literals resolve
	// against the same day.
	now := e.now()

	rows := make([]store.Record, 0)
	col.Each(func(id string, rec store.Record) bool {
		if plan.Where == nil || plan.Where.Evaluate(rec, now) {
			rows = append(rows, project(rec, plan.Fields))
		}
		return true
	})

	if plan.OrderBy != nil {
		rows = applyOrderBy(rows, plan.OrderBy)
	}
	rows = applyOffsetLimit(rows, plan.Offset, plan.Limit)

	return &Result{Results: rows}, nil
}

// decodeQuery decodes percent escapes in a query string. Only a % followed
// by two hex digits is an escape; any other % passes through literally, so
// a LIKE wildcard like '%important%' survives undecoded. Decoding never
// fails.
func decodeQuery(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// project copies the requested fields out of rec. Fields absent from the
// record are omitted, never padded with nil. A field list of a single "*"
// copies every field.
func project(rec store.Record, fields []string) store.Record {
	if len(fields) == 1 && fields[0] == "*" {
		out := make(store.Record, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		return out
	}
	out := make(store.Record)
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			out[f] = v
		}
	}
	return out
}

// applyOrderBy sorts rows by the given field. The sort is stable, so rows
// with equal keys - including rows missing the field, which sort as the
// empty string - keep their retrieval order.
func applyOrderBy(rows []store.Record, ob *OrderBy) []store.Record {
	sorted := make([]store.Record, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compareSortKeys(sorted[i][ob.Field], sorted[j][ob.Field])
		if ob.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

// compareSortKeys orders two sort keys: numerically when both are numbers,
// otherwise by string form, with missing values reading as "".
func compareSortKeys(a, b interface{}) int {
	aNum, aOK := toFloat64(a)
	bNum, bOK := toFloat64(b)
	if aOK && bOK {
		switch {
		case aNum < bNum:
			return -1
		case aNum > bNum:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(sortString(a), sortString(b))
}

func sortString(v interface{}) string {
	if v == nil {
		return ""
	}
	return stringify(v)
}

// applyOffsetLimit drops the first offset rows, then truncates to limit.
// This order is fixed regardless of which keyword appeared first in the
// query string. Negative values are treated as zero.
func applyOffsetLimit(rows []store.Record, offset, limit *int) []store.Record {
	if offset != nil && *offset > 0 {
		if *offset >= len(rows) {
			return []store.Record{}
		}
		rows = rows[*offset:]
	}
	if limit != nil {
		if *limit <= 0 {
			return []store.Record{}
		}
		if *limit < len(rows) {
			rows = rows[:*limit]
		}
	}
	return rows
}
