package soql

import "strings"

// ParseWhere parses a WHERE-clause string into a condition tree. It returns
// nil for an empty or all-whitespace clause.
//
// AND binds tighter than OR, so the string is split at top-level ORs first,
// then at top-level ANDs, then unwrapped from grouping parentheses, and
// finally parsed as a single leaf. A condition no operator can be detected
// in becomes an unparsed leaf that matches nothing.
func ParseWhere(clause string) Condition {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return nil
	}

	if offsets := topLevelWord(clause, "OR"); len(offsets) > 0 {
		return &OrCondition{Children: parseParts(clause, offsets, len("OR"))}
	}
	if offsets := topLevelWord(clause, "AND"); len(offsets) > 0 {
		return &AndCondition{Children: parseParts(clause, offsets, len("AND"))}
	}
	if inner, ok := unwrapParens(clause); ok {
		return ParseWhere(inner)
	}
	return parseLeaf(clause)
}

// topLevelWord returns the offsets of every occurrence of word that sits at
// parenthesis depth zero and is bounded by whitespace or the string ends.
func topLevelWord(s, word string) []int {
	var offsets []int
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		default:
			if depth != 0 || !strings.HasPrefix(s[i:], word) {
				continue
			}
			before := i == 0 || isSpace(s[i-1])
			after := i+len(word) >= len(s) || isSpace(s[i+len(word)])
			if before && after {
				offsets = append(offsets, i)
				i += len(word) - 1
			}
		}
	}
	return offsets
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseParts splits s at the given operator offsets, parses every part, and
// drops parts that parse to nothing. The result always has at least one
// child: if every part is empty the single child is an unparsed leaf, so a
// degenerate clause like a bare "OR" still matches nothing.
func parseParts(s string, offsets []int, wordLen int) []Condition {
	var children []Condition
	prev := 0
	for _, off := range append(offsets, len(s)) {
		if child := ParseWhere(s[prev:off]); child != nil {
			children = append(children, child)
		}
		prev = off + wordLen
	}
	if len(children) == 0 {
		children = append(children, &Leaf{Op: OpEqual, Unparsed: true})
	}
	return children
}

// unwrapParens reports whether s is fully wrapped in one matching pair of
// parentheses and returns the inner content if so.
func unwrapParens(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return "", false
			}
		}
	}
	if depth != 0 {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}

// leafOperators is the operator detection order for a single condition.
// Word operators come first; among the arithmetic operators the longer ones
// are checked first so "=" never matches inside "!=", ">=" or "<=".
var leafOperators = []struct {
	sep string
	op  Operator
}{
	{" LIKE ", OpLike},
	{" CONTAINS ", OpContains},
	{" >= ", OpGreaterEqual},
	{" <= ", OpLessEqual},
	{" != ", OpNotEqual},
	{" = ", OpEqual},
	{" > ", OpGreater},
	{" < ", OpLess},
}

// parseLeaf parses a single condition like "Status = 'Completed'" or
// "Subject LIKE '%review%'".
func parseLeaf(cond string) Condition {
	cond = strings.TrimSpace(cond)

	for _, candidate := range leafOperators[:2] {
		if field, value, ok := strings.Cut(cond, candidate.sep); ok {
			return &Leaf{
				Field: strings.TrimSpace(field),
				Op:    candidate.op,
				Value: stripQuotes(value),
			}
		}
	}

	if field, rest, ok := strings.Cut(cond, " IN "); ok {
		list := strings.TrimSpace(rest)
		if strings.HasPrefix(list, "(") && strings.HasSuffix(list, ")") {
			return &Leaf{
				Field:  strings.TrimSpace(field),
				Op:     OpIn,
				Values: splitInList(list[1 : len(list)-1]),
			}
		}
		// IN without a parenthesized list falls through to the
		// arithmetic operators.
	}

	for _, candidate := range leafOperators[2:] {
		if field, value, ok := strings.Cut(cond, candidate.sep); ok {
			return &Leaf{
				Field: strings.TrimSpace(field),
				Op:    candidate.op,
				Value: stripQuotes(value),
			}
		}
	}

	return &Leaf{Field: cond, Op: OpEqual, Unparsed: true}
}

// stripQuotes trims surrounding whitespace and one layer of matching quote
// characters (single or double) from a value.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == s[len(s)-1] && (s[0] == '\'' || s[0] == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

// splitInList splits the comma-separated body of an IN list. Commas inside
// quoted values do not split; a quote preceded by a backslash is kept as a
// literal character. Each value is trimmed, with its delimiting quotes
// consumed by the scan; empty values are dropped.
func splitInList(s string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false
	var quote byte

	flush := func() {
		if v := strings.TrimSpace(current.String()); v != "" {
			values = append(values, v)
		}
		current.Reset()
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case (c == '\'' || c == '"') && (i == 0 || s[i-1] != '\\'):
			switch {
			case !inQuotes:
				inQuotes = true
				quote = c
			case c == quote:
				inQuotes = false
			default:
				current.WriteByte(c)
			}
		case c == ',' && !inQuotes:
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return values
}
