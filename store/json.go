package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// LoadJSON reads records for object from a JSON file into st.
//
// Two layouts are accepted:
//   - a map of record id to record: {"evt-1": {"Name": "Standup"}, ...}
//   - an array of records: [{"Name": "Standup"}, ...]
//
// Array entries without an "Id" field are stored under generated ids.
// Map entries are inserted in sorted id order so repeated loads produce the
// same retrieval order.
func LoadJSON(st *MemStore, object, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	col := st.Collection(object)

	var byID map[string]Record
	if err := json.Unmarshal(data, &byID); err == nil {
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			col.Put(id, byID[id])
		}
		return nil
	}

	var list []Record
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, rec := range list {
		col.Append(rec)
	}
	return nil
}
