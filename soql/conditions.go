package soql

import (
	"fmt"
	"regexp"
	"strings"
)

// ParsedCondition is one entry parsed by ParseConditions.
type ParsedCondition struct {
	Op     Operator
	Field  string
	Value  string
	Values []string // set for IN
}

var (
	likeWord     = regexp.MustCompile(`(?i)\bLIKE\b`)
	containsWord = regexp.MustCompile(`(?i)\bCONTAINS\b`)
	inWord       = regexp.MustCompile(`(?i)\bIN\b`)
)

// ParseConditions parses a list of independent condition strings, each a
// single field/operator/value comparison with no AND/OR or nesting, such as
// "Subject = 'Meeting'" or "Location IN ('Boardroom', 'Lab')".
//
// The operator set is narrower than the WHERE-clause grammar: =, IN, LIKE,
// CONTAINS, > and <, detected in the same priority order as WHERE-clause
// leaves. The word operators win anywhere in the condition, so an = whose
// value contains a standalone LIKE, CONTAINS or IN word parses as that word
// operator; quote values accordingly. Unlike the lenient WHERE parser, a
// condition matching no supported operator fails the whole call with
// ErrUnsupportedOperator.
// LIKE values have their % wildcards removed: consumers of this form match
// on bare substrings.
func ParseConditions(conditions []string) ([]ParsedCondition, error) {
	parsed := make([]ParsedCondition, 0, len(conditions))
	for _, cond := range conditions {
		cond = strings.TrimSpace(cond)

		if loc := likeWord.FindStringIndex(cond); loc != nil {
			parsed = append(parsed, ParsedCondition{
				Op:    OpLike,
				Field: strings.TrimSpace(cond[:loc[0]]),
				Value: strings.ReplaceAll(trimValue(cond[loc[1]:]), "%", ""),
			})
			continue
		}
		if loc := containsWord.FindStringIndex(cond); loc != nil {
			parsed = append(parsed, ParsedCondition{
				Op:    OpContains,
				Field: strings.TrimSpace(cond[:loc[0]]),
				Value: trimValue(cond[loc[1]:]),
			})
			continue
		}
		if loc := inWord.FindStringIndex(cond); loc != nil {
			var values []string
			for _, v := range strings.Split(cond[loc[1]:], ",") {
				values = append(values, trimValue(v))
			}
			parsed = append(parsed, ParsedCondition{
				Op:     OpIn,
				Field:  strings.TrimSpace(cond[:loc[0]]),
				Values: values,
			})
			continue
		}

		if hasPlainEquals(cond) {
			field, value, _ := strings.Cut(cond, "=")
			parsed = append(parsed, ParsedCondition{
				Op:    OpEqual,
				Field: strings.TrimSpace(field),
				Value: trimValue(value),
			})
			continue
		}
		if field, value, ok := strings.Cut(cond, ">"); ok {
			parsed = append(parsed, ParsedCondition{
				Op:    OpGreater,
				Field: strings.TrimSpace(field),
				Value: trimValue(value),
			})
			continue
		}
		if field, value, ok := strings.Cut(cond, "<"); ok {
			parsed = append(parsed, ParsedCondition{
				Op:    OpLess,
				Field: strings.TrimSpace(field),
				Value: trimValue(value),
			})
			continue
		}

		return nil, fmt.Errorf("%w: condition must contain one of =, IN, LIKE, CONTAINS, >, <", ErrUnsupportedOperator)
	}
	return parsed, nil
}

// hasPlainEquals reports whether cond contains a bare = that is not part
// of !=, >= or <=, none of which this parser supports.
func hasPlainEquals(cond string) bool {
	if !strings.Contains(cond, "=") {
		return false
	}
	return !strings.Contains(cond, "!=") &&
		!strings.Contains(cond, ">=") &&
		!strings.Contains(cond, "<=")
}

// trimValue strips surrounding whitespace, quotes and parentheses from a
// flat condition value.
func trimValue(s string) string {
	return strings.Trim(s, " \t'()\"")
}
