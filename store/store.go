// Package store provides the in-memory record store the query engine reads.
//
// A store maps object names (e.g. "Event", "Task") to collections, and a
// collection maps record ids to flat records. Collections remember insertion
// order: the engine's stable sort relies on a deterministic retrieval order
// for rows with equal sort keys.
//
// The engine only ever reads through the Store interface. Callers that
// mutate a MemStore while queries are running must serialize writes against
// concurrent reads themselves.
package store

import "github.com/google/uuid"

// Record is a flat mapping from field name to a primitive value
// (string, number, boolean, or nil).
type Record map[string]interface{}

// Store resolves an object name to its collection.
type Store interface {
	// Lookup returns the collection for object, or false if the object
	// does not exist.
	Lookup(object string) (*Collection, bool)
}

// Collection is an ordered set of records keyed by id.
// Each visits records in insertion order.
type Collection struct {
	ids     []string
	records map[string]Record
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{records: make(map[string]Record)}
}

// Put inserts or replaces the record stored under id. Replacing a record
// keeps its original position.
func (c *Collection) Put(id string, rec Record) {
	if _, ok := c.records[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.records[id] = rec
}

// Append inserts rec under its "Id" field when it carries a string id,
// otherwise under a generated UUID. It returns the id used.
func (c *Collection) Append(rec Record) string {
	id, ok := rec["Id"].(string)
	if !ok || id == "" {
		id = uuid.NewString()
	}
	c.Put(id, rec)
	return id
}

// Get returns the record stored under id.
func (c *Collection) Get(id string) (Record, bool) {
	rec, ok := c.records[id]
	return rec, ok
}

// Len returns the number of records in the collection.
func (c *Collection) Len() int {
	return len(c.ids)
}

// Each calls fn for every record in insertion order until fn returns false.
func (c *Collection) Each(fn func(id string, rec Record) bool) {
	for _, id := range c.ids {
		if !fn(id, c.records[id]) {
			return
		}
	}
}

// MemStore is a Store backed by plain maps.
type MemStore struct {
	collections map[string]*Collection
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{collections: make(map[string]*Collection)}
}

// Collection returns the collection for object, creating it if needed.
func (s *MemStore) Collection(object string) *Collection {
	col, ok := s.collections[object]
	if !ok {
		col = NewCollection()
		s.collections[object] = col
	}
	return col
}

// Lookup implements Store.
func (s *MemStore) Lookup(object string) (*Collection, bool) {
	col, ok := s.collections[object]
	return col, ok
}
