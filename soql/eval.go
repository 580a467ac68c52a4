package soql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soqlet/soqlet/store"
)

// Evaluate implements Condition.
func (a *AndCondition) Evaluate(rec store.Record, now time.Time) bool {
	for _, child := range a.Children {
		if !child.Evaluate(rec, now) {
			return false
		}
	}
	return true
}

// Evaluate implements Condition.
func (o *OrCondition) Evaluate(rec store.Record, now time.Time) bool {
	for _, child := range o.Children {
		if child.Evaluate(rec, now) {
			return true
		}
	}
	return false
}

// Evaluate implements Condition. A leaf whose field is absent from the
// record never matches; neither does an unparsed leaf. When the operand is
// a date literal the record's field is compared as a date; if the field
// does not parse as a date, evaluation falls back to the plain scalar
// comparison below.
func (l *Leaf) Evaluate(rec store.Record, now time.Time) bool {
	if l.Unparsed {
		return false
	}
	value, ok := rec[l.Field]
	if !ok {
		return false
	}

	if l.Op != OpIn && IsDateLiteral(l.Value) {
		if span, ok := ResolveDateLiteral(l.Value, now); ok {
			if match, ok := compareDate(stringify(value), l.Op, span); ok {
				return match
			}
		}
	}

	switch l.Op {
	case OpLike:
		return matchLike(stringify(value), l.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(stringify(value)), strings.ToLower(l.Value))
	case OpIn:
		for _, raw := range l.Values {
			if compareScalar(value, OpEqual, coerceScalar(raw)) {
				return true
			}
		}
		return false
	default:
		return compareScalar(value, l.Op, coerceScalar(l.Value))
	}
}

// compareDate compares a record field against a resolved date span. The
// field tolerates an embedded time part by truncating at the T separator.
// ok is false when the field does not parse as a date at all.
//
// Range semantics: = means within the span inclusive, > strictly after the
// span end, < strictly before the span start, >= and <= are inclusive at
// the span start and end. For single-day spans these collapse to ordinary
// date comparison.
func compareDate(field string, op Operator, span DateSpan) (match, ok bool) {
	s := strings.TrimSpace(field)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false, false
	}

	switch op {
	case OpEqual:
		return !d.Before(span.Start) && !d.After(span.End), true
	case OpNotEqual:
		return d.Before(span.Start) || d.After(span.End), true
	case OpGreater:
		return d.After(span.End), true
	case OpLess:
		return d.Before(span.Start), true
	case OpGreaterEqual:
		return !d.Before(span.Start), true
	case OpLessEqual:
		return !d.After(span.End), true
	}
	return false, true
}

// coerceScalar converts the raw operand text to the value it spells: a
// boolean for true/false, a number when the text looks numeric, otherwise
// the string itself. Coercion happens once per leaf evaluation; the typed
// comparison below never guesses at types again.
func coerceScalar(raw string) interface{} {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if looksNumeric(raw) {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	}
	return raw
}

// looksNumeric reports whether s consists of digits, dots and minus signs
// with at least one digit. It intentionally rejects exponent notation,
// which the dialect treats as a plain string.
func looksNumeric(s string) bool {
	digits := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return digits
}

// compareScalar compares a record value against a coerced operand.
// Comparison between incompatible types reports false, never an error: a
// type mismatch is a non-match, not a failed query.
func compareScalar(left interface{}, op Operator, right interface{}) bool {
	if left == nil || right == nil {
		switch op {
		case OpEqual:
			return left == nil && right == nil
		case OpNotEqual:
			return !(left == nil && right == nil)
		}
		return false
	}

	if leftNum, ok := toFloat64(left); ok {
		if rightNum, ok := toFloat64(right); ok {
			return compareNumbers(leftNum, op, rightNum)
		}
		return false
	}
	if leftStr, ok := left.(string); ok {
		if rightStr, ok := right.(string); ok {
			return compareStrings(leftStr, op, rightStr)
		}
		return false
	}
	if leftBool, ok := left.(bool); ok {
		if rightBool, ok := right.(bool); ok {
			return compareBools(leftBool, op, rightBool)
		}
		return false
	}
	return false
}

// toFloat64 converts any numeric value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

func compareNumbers(left float64, op Operator, right float64) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	case OpGreater:
		return left > right
	case OpLess:
		return left < right
	case OpGreaterEqual:
		return left >= right
	case OpLessEqual:
		return left <= right
	}
	return false
}

func compareStrings(left string, op Operator, right string) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	case OpGreater:
		return left > right
	case OpLess:
		return left < right
	case OpGreaterEqual:
		return left >= right
	case OpLessEqual:
		return left <= right
	}
	return false
}

// compareBools supports equality only; ordering booleans is a type
// mismatch.
func compareBools(left bool, op Operator, right bool) bool {
	switch op {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	}
	return false
}

// matchLike matches value against a SQL LIKE pattern, case-insensitively
// and anywhere in the value: % matches any run of characters, _ matches
// exactly one. All other pattern characters are literal.
func matchLike(value, pattern string) bool {
	var re strings.Builder
	re.WriteString("(?is)")
	for _, r := range pattern {
		switch r {
		case '%':
			re.WriteString(".*")
		case '_':
			re.WriteString(".")
		default:
			re.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	matched, err := regexp.MatchString(re.String(), value)
	return err == nil && matched
}

// stringify renders a record value the way it reads in the source data.
func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
