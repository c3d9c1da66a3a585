package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/pricewatcher/internal/product"
)

func testStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	return NewFileStore(path), path
}

func floatPtr(v float64) *float64 { return &v }

func sampleProducts() []product.TrackedProduct {
	checked := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []product.TrackedProduct{
		{
			ID:            "a1",
			URL:           "https://example.com/item/1",
			DisplayName:   "Keyboard",
			CurrentPrice:  floatPtr(1000),
			LowestPrice:   floatPtr(900),
			LastCheckedAt: &checked,
		},
		{
			ID:          "b2",
			URL:         "https://example.com/item/2",
			DisplayName: product.UnknownName,
		},
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	s, _ := testStore(t)
	assert.Empty(t, s.LoadAll())
}

func TestLoadAllCorruptFile(t *testing.T) {
	s, path := testStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Empty(t, s.LoadAll())
}

func TestSaveAllRoundTrip(t *testing.T) {
	s, _ := testStore(t)
	products := sampleProducts()

	require.NoError(t, s.SaveAll(products))
	loaded := s.LoadAll()
	require.Len(t, loaded, 2)
	assert.Equal(t, products, loaded)

	// Saving an unmodified loaded collection reproduces an equivalent one
	require.NoError(t, s.SaveAll(loaded))
	assert.Equal(t, loaded, s.LoadAll())
}

func TestSaveAllLeavesNoTempFiles(t *testing.T) {
	s, path := testStore(t)
	require.NoError(t, s.SaveAll(sampleProducts()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestSaveAllNilCollection(t *testing.T) {
	s, path := testStore(t)
	require.NoError(t, s.SaveAll(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestUpdateAppendsAndPersists(t *testing.T) {
	s, _ := testStore(t)
	require.NoError(t, s.SaveAll(sampleProducts()))

	err := s.Update(func(products []product.TrackedProduct) []product.TrackedProduct {
		return append(products, product.TrackedProduct{ID: "c3", URL: "https://example.com/item/3"})
	})
	require.NoError(t, err)

	assert.Len(t, s.LoadAll(), 3)
}

func TestUpdateSerializesConcurrentWriters(t *testing.T) {
	s, _ := testStore(t)
	require.NoError(t, s.SaveAll(nil))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := s.Update(func(products []product.TrackedProduct) []product.TrackedProduct {
				return append(products, product.TrackedProduct{ID: string(rune('a' + n))})
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.LoadAll(), 20)
}
