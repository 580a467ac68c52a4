package soql

import (
	"fmt"
	"strconv"
	"strings"
)

// rawQuery holds the tokenized query alongside the original text. Most
// clauses are located in the token stream; ORDER BY is a two-word keyword
// and is easier to locate by substring search in the original text.
type rawQuery struct {
	text   string
	tokens []string
}

func scanQuery(text string) rawQuery {
	return rawQuery{text: text, tokens: strings.Fields(text)}
}

// tokenIndex returns the index of the first token exactly equal to keyword,
// or -1. Keywords other than SELECT are matched case-sensitively: the
// dialect recognizes them only in uppercase.
func (q rawQuery) tokenIndex(keyword string) int {
	for i, tok := range q.tokens {
		if tok == keyword {
			return i
		}
	}
	return -1
}

// Parse builds a query plan from an already percent-decoded query string.
func Parse(text string) (*Plan, error) {
	q := scanQuery(text)
	if len(q.tokens) == 0 || !strings.EqualFold(q.tokens[0], "SELECT") {
		return nil, fmt.Errorf("%w: must start with SELECT", ErrMalformedQuery)
	}

	fromIdx := q.tokenIndex("FROM")
	if fromIdx <= 0 {
		return nil, fmt.Errorf("%w: missing FROM clause", ErrMalformedQuery)
	}
	if fromIdx+1 >= len(q.tokens) {
		return nil, fmt.Errorf("%w: missing object name after FROM", ErrMalformedQuery)
	}

	plan := &Plan{
		Fields: splitFieldList(q.tokens[1:fromIdx]),
		Object: q.tokens[fromIdx+1],
	}

	if whereIdx := q.tokenIndex("WHERE"); whereIdx >= 0 {
		end := q.whereClauseEnd(whereIdx)
		clause := strings.Join(q.tokens[whereIdx+1:end], " ")
		plan.Where = ParseWhere(clause)
	}

	offset, err := q.clauseInt("OFFSET")
	if err != nil {
		return nil, err
	}
	plan.Offset = offset

	limit, err := q.clauseInt("LIMIT")
	if err != nil {
		return nil, err
	}
	plan.Limit = limit

	plan.OrderBy = q.orderBySpec()
	return plan, nil
}

// splitFieldList turns the tokens between SELECT and FROM into trimmed
// field names. The tokens are re-joined first so "Name ,Location" and
// "Name, Location" parse identically.
func splitFieldList(tokens []string) []string {
	fields := make([]string, 0, len(tokens))
	for _, f := range strings.Split(strings.Join(tokens, " "), ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// whereClauseEnd returns the token index ending the WHERE clause: the first
// ORDER BY pair, LIMIT or OFFSET after it, or the end of the stream.
func (q rawQuery) whereClauseEnd(whereIdx int) int {
	for i := whereIdx + 1; i < len(q.tokens); i++ {
		if q.tokens[i] == "ORDER" && i+1 < len(q.tokens) && q.tokens[i+1] == "BY" {
			return i
		}
		if q.tokens[i] == "LIMIT" || q.tokens[i] == "OFFSET" {
			return i
		}
	}
	return len(q.tokens)
}

// clauseInt parses the integer token following keyword, or nil when the
// keyword is absent.
func (q rawQuery) clauseInt(keyword string) (*int, error) {
	idx := q.tokenIndex(keyword)
	if idx < 0 {
		return nil, nil
	}
	if idx+1 >= len(q.tokens) {
		return nil, fmt.Errorf("%s requires a value", keyword)
	}
	n, err := strconv.Atoi(q.tokens[idx+1])
	if err != nil {
		return nil, fmt.Errorf("parsing %s value: %w", keyword, err)
	}
	return &n, nil
}

// orderBySpec extracts the ORDER BY field and direction by substring
// search. The clause value runs until the first LIMIT or OFFSET.
func (q rawQuery) orderBySpec() *OrderBy {
	idx := strings.Index(q.text, "ORDER BY")
	if idx < 0 {
		return nil
	}
	clause := q.text[idx+len("ORDER BY"):]
	if i := strings.Index(clause, "LIMIT"); i >= 0 {
		clause = clause[:i]
	}
	if i := strings.Index(clause, "OFFSET"); i >= 0 {
		clause = clause[:i]
	}
	parts := strings.Fields(clause)
	if len(parts) == 0 {
		return nil
	}
	ob := &OrderBy{Field: parts[0]}
	if len(parts) > 1 {
		ob.Desc = strings.ToUpper(parts[1]) == "DESC"
	}
	return ob
}
