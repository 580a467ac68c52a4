// Package output provides formatters for rendering query result rows.
//
// Supported formats:
//   - JSON Lines: one JSON object per row
//   - CSV: comma-separated values with a header row
//   - Table: aligned text table
//
// Example usage:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(res.Results); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"
	"sort"

	"github.com/soqlet/soqlet/store"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows []store.Record) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// columnNames returns the sorted union of field names across rows. Rows
// are projections and may be sparse, so no single row can supply the
// header.
func columnNames(rows []store.Record) []string {
	seen := make(map[string]bool)
	columns := make([]string, 0)
	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	sort.Strings(columns)
	return columns
}
