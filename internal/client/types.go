package client

// DatabaseInfo is a single entry from listDatabases.
type DatabaseInfo struct {
	Name string `bson:"name"`
}

// CollectionInfo is a single entry from listCollections. Type is
// "collection", "view" or "timeseries".
type CollectionInfo struct {
	Name string `bson:"name"`
	Type string `bson:"type"`
}

// IndexInfo is a single entry from listIndexes.
type IndexInfo struct {
	Name string `bson:"name"`
}

// FetchOptions controls the collStats request.
type FetchOptions struct {
	Scale        int64 // divisor applied by the server to size fields
	IndexDetails bool
}

// CollStats represents the parts of a collStats response used for cache
// monitoring. Size fields are in Scale units.
type CollStats struct {
	Size           float64                `bson:"size"`
	TotalIndexSize float64                `bson:"totalIndexSize"`
	IndexSizes     map[string]float64     `bson:"indexSizes"`
	WiredTiger     *EngineStats           `bson:"wiredTiger,omitempty"`
	IndexDetails   map[string]EngineStats `bson:"indexDetails,omitempty"`
}

// EngineStats is a WiredTiger statistics section.
type EngineStats struct {
	Cache *CacheCounters `bson:"cache,omitempty"`
}

// CacheCounters holds WiredTiger cache counters in bytes (pages as a count),
// cumulative since the engine started. The server does not apply the scale
// option to these fields. Nil fields were absent from the response.
type CacheCounters struct {
	BytesCurrentlyCached  *float64 `bson:"bytes currently in the cache,omitempty"`
	BytesReadIntoCache    *float64 `bson:"bytes read into cache,omitempty"`
	BytesWrittenFromCache *float64 `bson:"bytes written from cache,omitempty"`
	PagesRequested        *float64 `bson:"pages requested from the cache,omitempty"`
}

// TotalSize returns data size plus total index size.
func (s *CollStats) TotalSize() float64 {
	return s.Size + s.TotalIndexSize
}

// CollectionCache returns the collection-level cache counters, or nil when
// the response carries no WiredTiger section.
func (s *CollStats) CollectionCache() *CacheCounters {
	if s.WiredTiger == nil {
		return nil
	}
	return s.WiredTiger.Cache
}

// IndexCache returns the cache counters for the named index, or nil.
func (s *CollStats) IndexCache(name string) *CacheCounters {
	d, ok := s.IndexDetails[name]
	if !ok {
		return nil
	}
	return d.Cache
}
