package output

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/soqlet/soqlet/store"
)

// TableFormatter outputs rows as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes rows as a table with one column per field. Fields missing
// from a row render empty.
func (t *TableFormatter) Format(rows []store.Record) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(t.writer, "(0 rows)")
		return err
	}

	columns := columnNames(rows)

	tw := table.NewWriter()
	tw.SetOutputMirror(t.writer)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, rec := range rows {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			if v, ok := rec[col]; ok && v != nil {
				row[i] = v
			} else {
				row[i] = ""
			}
		}
		tw.AppendRow(row)
	}

	tw.Render()
	return nil
}
