// Package soql parses and executes SOQL-like queries against an in-memory
// record store.
//
// The dialect covers a single collection per query:
//
//	SELECT <fields> FROM <Object> [WHERE <conditions>]
//	    [ORDER BY <field> [ASC|DESC]] [OFFSET n] [LIMIT n]
//
// WHERE conditions combine =, !=, >, <, >=, <=, LIKE, CONTAINS and IN with
// AND/OR (AND binds tighter) and parenthesized grouping. Values may be
// relative date literals such as TODAY, THIS_WEEK or LAST_N_DAYS:30, which
// are resolved against the engine clock at execution time.
//
// Keyword case follows the dialect exactly: SELECT is case-insensitive,
// while FROM, WHERE, AND, OR, ORDER BY, LIMIT and OFFSET are recognized
// only in uppercase. This asymmetry is documented query-acceptance
// behavior, not an oversight; lowercase "from" makes a query malformed.
//
// # Basic Usage
//
//	st := store.NewMemStore()
//	st.Collection("Event").Put("evt-1", store.Record{
//	    "Name": "Standup", "Location": "Boardroom",
//	})
//
//	engine := soql.New(st)
//	res, err := engine.Execute("SELECT Name FROM Event WHERE Location = 'Boardroom'")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, row := range res.Results {
//	    fmt.Println(row["Name"])
//	}
//
// # Execution Pipeline
//
// Execution always runs decode, scan, parse, lookup, filter with
// projection, stable sort, offset, limit - in that order, regardless of the
// clause order in the query string. OFFSET is applied before LIMIT even
// when LIMIT appears first.
//
// # Error Handling
//
// Every failure surfaces as a single execution error wrapping the cause.
// Callers can classify with errors.Is against ErrMalformedQuery and
// ErrUnknownObject. Malformed leaf conditions inside WHERE do not fail the
// query; they become unparsed leaves that match nothing.
//
// # Concurrency
//
// The engine is a pure synchronous computation with no internal state
// beyond the store and clock it was built with. Concurrent Execute calls
// are safe as long as the store is not written to during the calls.
package soql
