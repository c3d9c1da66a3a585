package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"sjsage522/pricewatcher/internal/product"
	"sjsage522/pricewatcher/logger"
	apperrors "sjsage522/pricewatcher/pkg/errors"
)

// FileStore persists the collection as a single human-readable JSON document.
// Every save writes a temp file in the same directory and renames it over the
// previous document, so readers see either the old or the new collection.
type FileStore struct {
	path string
	mu   sync.Mutex
	log  *logger.Logger
}

var _ PriceStore = (*FileStore)(nil)

// NewFileStore creates a store backed by the JSON document at path
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		log:  logger.ForStore(),
	}
}

// LoadAll returns the persisted collection. Corruption is swallowed and
// logged; the caller sees an empty collection, never a fatal error.
func (s *FileStore) LoadAll() []product.TrackedProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// SaveAll replaces the persisted collection
func (s *FileStore) SaveAll(products []product.TrackedProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(products)
}

// Update runs a serialized load-mutate-save cycle
func (s *FileStore) Update(mutate func([]product.TrackedProduct) []product.TrackedProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.loadLocked()
	products = mutate(products)
	return s.saveLocked(products)
}

func (s *FileStore) loadLocked() []product.TrackedProduct {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("Failed to read product store; treating as empty")
		}
		return nil
	}

	var products []product.TrackedProduct
	if err := json.Unmarshal(data, &products); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("Corrupt product store; treating as empty")
		return nil
	}
	return products
}

func (s *FileStore) saveLocked(products []product.TrackedProduct) error {
	if products == nil {
		products = []product.TrackedProduct{}
	}

	data, err := json.MarshalIndent(products, "", "    ")
	if err != nil {
		return apperrors.NewPersistence("store", "failed to encode products", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".products-*.json")
	if err != nil {
		return apperrors.NewPersistence("store", "failed to create temp file", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.NewPersistence("store", "failed to write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.NewPersistence("store", "failed to close temp file", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return apperrors.NewPersistence("store", "failed to set permissions on temp file", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return apperrors.NewPersistence("store", "failed to replace product store", err)
	}
	return nil
}
