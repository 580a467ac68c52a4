package store

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// LoadParquet reads records for object from a parquet file into st.
//
// Each row becomes one record; column names become field names. Rows
// without an "Id" column are stored under generated ids. The whole file is
// loaded into memory, which matches how the engine queries collections.
func LoadParquet(st *MemStore, object, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return fmt.Errorf("opening parquet file %s: %w", path, err)
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	col := st.Collection(object)
	for {
		row := make(map[string]interface{})
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("reading row from %s: %w", path, err)
		}
		col.Append(Record(row))
	}

	return nil
}
