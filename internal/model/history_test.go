package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResidencyHistory_PushAndLen(t *testing.T) {
	h := NewResidencyHistory(5)
	assert.Equal(t, 0, h.Len())

	h.Push(ResidencyPoint{Timestamp: time.Now(), CachedMB: 1})
	assert.Equal(t, 1, h.Len())

	h.Push(ResidencyPoint{Timestamp: time.Now(), CachedMB: 2})
	h.Push(ResidencyPoint{Timestamp: time.Now(), CachedMB: 3})
	assert.Equal(t, 3, h.Len())
}

func TestResidencyHistory_OverwritesOldest(t *testing.T) {
	h := NewResidencyHistory(3)

	h.Push(ResidencyPoint{CachedMB: 10})
	h.Push(ResidencyPoint{CachedMB: 20})
	h.Push(ResidencyPoint{CachedMB: 30})
	require.Equal(t, 3, h.Len())

	h.Push(ResidencyPoint{CachedMB: 40})
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []float64{20, 30, 40}, h.Values("cachedMB"))

	h.Push(ResidencyPoint{CachedMB: 50})
	assert.Equal(t, []float64{30, 40, 50}, h.Values("cachedMB"))
}

func TestResidencyHistory_Values_AllFields(t *testing.T) {
	h := NewResidencyHistory(2)
	h.Push(ResidencyPoint{CachedMB: 7, ReadRate: 2, WriteRate: 3})

	assert.Equal(t, []float64{7}, h.Values("cachedMB"))
	assert.Equal(t, []float64{2}, h.Values("readRate"))
	assert.Equal(t, []float64{3}, h.Values("writeRate"))
	// Unknown field yields zeros.
	assert.Equal(t, []float64{0}, h.Values("bogus"))
}

func TestResidencyHistory_ClearAndDefaultCapacity(t *testing.T) {
	h := NewResidencyHistory(0)
	for i := 0; i < 65; i++ {
		h.Push(ResidencyPoint{CachedMB: int64(i)})
	}
	assert.Equal(t, 60, h.Len())
	vals := h.Values("cachedMB")
	assert.Equal(t, float64(5), vals[0])
	assert.Equal(t, float64(64), vals[59])

	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Values("cachedMB"))
}

func TestPointFromRows(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	p := PointFromRows(ts, []DisplayRow{
		{CachedMB: 10, ReadRate: 1, WriteRate: 2},
		{CachedMB: 5, ReadRate: 3, WriteRate: 0},
	})
	assert.Equal(t, ResidencyPoint{Timestamp: ts, CachedMB: 15, ReadRate: 4, WriteRate: 2}, p)
}

func TestCatalogCounts(t *testing.T) {
	cat := Catalog{Collections: []CollectionEntity{
		{Database: "shop", Collection: "orders", Indexes: []IndexEntity{{Name: "_id_"}, {Name: "sku_1"}}},
		{Database: "shop", Collection: "users"},
	}}
	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, 4, cat.EntityCount())
	assert.Equal(t, "shop.orders", cat.Collections[0].Namespace())
	assert.Equal(t, "shop.orders - IX: sku_1", cat.Collections[0].IndexRowName("sku_1"))
	assert.True(t, cat.Collections[1].State.IsZero())
}
