package store

import "sjsage522/pricewatcher/internal/product"

// PriceStore is the durable collection of tracked products. There is no
// partial update: callers read the full set, mutate in memory, and save the
// full set back. LoadAll always yields a fresh snapshot, so no caller ever
// holds a long-lived copy of the persisted state.
type PriceStore interface {
	// LoadAll returns every tracked product. A missing or corrupt backing
	// resource yields an empty collection, never an error.
	LoadAll() []product.TrackedProduct

	// SaveAll replaces the persisted collection. A concurrent reader never
	// observes a partially written state.
	SaveAll(products []product.TrackedProduct) error

	// Update runs a load-mutate-save cycle atomically with respect to other
	// Update calls on the same store.
	Update(mutate func([]product.TrackedProduct) []product.TrackedProduct) error
}
