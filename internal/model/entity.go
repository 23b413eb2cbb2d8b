package model

// CounterState holds the last observed absolute values for one entity. Byte
// counters are in scale units (MB by default); PagesRequested is a raw count.
type CounterState struct {
	BytesInCache   int64
	BytesRead      int64
	BytesWritten   int64
	PagesRequested int64
}

// IsZero reports whether the state has never been updated.
func (s CounterState) IsZero() bool {
	return s == CounterState{}
}

// IndexEntity is one index of a monitored collection.
type IndexEntity struct {
	Name  string
	State CounterState
}

// CollectionEntity is one monitored collection. Its indexes are sampled from
// the collection's own statistics payload.
type CollectionEntity struct {
	Database   string
	Collection string
	State      CounterState
	Indexes    []IndexEntity
}

// Namespace returns "<db>.<collection>".
func (c *CollectionEntity) Namespace() string {
	return c.Database + "." + c.Collection
}

// IndexRowName returns the display name of one of c's indexes.
func (c *CollectionEntity) IndexRowName(index string) string {
	return c.Namespace() + " - IX: " + index
}

// Catalog is the fixed, ordered set of monitored collections for a run.
// Order is discovery order and never changes after construction.
type Catalog struct {
	Collections []CollectionEntity
}

// Len returns the number of collection entities.
func (c *Catalog) Len() int {
	return len(c.Collections)
}

// EntityCount returns the number of collections plus indexes.
func (c *Catalog) EntityCount() int {
	n := len(c.Collections)
	for i := range c.Collections {
		n += len(c.Collections[i].Indexes)
	}
	return n
}
