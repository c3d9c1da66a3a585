package registry

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"sjsage522/pricewatcher/internal/extractor"
	"sjsage522/pricewatcher/internal/fetcher"
	"sjsage522/pricewatcher/internal/product"
	"sjsage522/pricewatcher/logger"
	apperrors "sjsage522/pricewatcher/pkg/errors"
	"sjsage522/pricewatcher/services/notifier"
	"sjsage522/pricewatcher/services/publisher"
	"sjsage522/pricewatcher/services/store"
)

// Registry adds and removes tracked products on behalf of the dashboard.
// Adding performs one immediate scrape; the record is persisted whether or
// not that scrape observed a price.
type Registry struct {
	store     store.PriceStore
	fetcher   fetcher.Fetcher
	extractor extractor.Extractor
	notifier  notifier.Notifier
	publisher publisher.Publisher
	now       func() time.Time
	log       *logger.Logger
}

// New creates a new registry
func New(
	st store.PriceStore,
	fetch fetcher.Fetcher,
	extract extractor.Extractor,
	notify notifier.Notifier,
	publish publisher.Publisher,
) *Registry {
	return &Registry{
		store:     st,
		fetcher:   fetch,
		extractor: extract,
		notifier:  notify,
		publisher: publish,
		now:       time.Now,
		log:       logger.ForRegistry(),
	}
}

// AddProduct registers a URL for tracking and scrapes it once immediately.
// A failed first scrape still persists the record with no price; the sweep
// picks it up later. The "new product" notification fires only when the
// first scrape observed a price.
func (r *Registry) AddProduct(ctx context.Context, url string) (product.TrackedProduct, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return product.TrackedProduct{}, apperrors.NewValidation("registry", "url must not be empty")
	}

	p := product.TrackedProduct{
		ID:          newID(),
		URL:         url,
		DisplayName: product.UnknownName,
	}

	if body, err := r.fetcher.Fetch(ctx, url); err != nil {
		r.log.Warn().Err(err).Str("url", url).Msg("Initial scrape failed; tracking without a price")
	} else {
		res := r.extractor.Extract(body)
		if res.Price != nil {
			p.Apply(product.Observation{Price: *res.Price, Name: res.Name, At: r.now()})
		} else if res.Name != "" {
			p.DisplayName = res.Name
		}
	}

	err := r.store.Update(func(products []product.TrackedProduct) []product.TrackedProduct {
		return append(products, p)
	})
	if err != nil {
		return product.TrackedProduct{}, err
	}

	r.log.Info().Str("product_id", p.ID).Str("url", url).Msg("Product added")

	if p.CurrentPrice != nil {
		message := notifier.AddedMessage(p.DisplayName, *p.CurrentPrice, p.URL)
		if err := r.notifier.Notify(ctx, message); err != nil {
			r.log.Warn().Err(err).Str("product_id", p.ID).Msg("Failed to send added notification")
		}

		if err := r.publisher.Publish(ctx, publisher.Event{
			Type:      publisher.EventAdded,
			ProductID: p.ID,
			Name:      p.DisplayName,
			URL:       p.URL,
			Price:     p.CurrentPrice,
			At:        r.now(),
		}); err != nil {
			r.log.Warn().Err(err).Str("product_id", p.ID).Msg("Failed to publish added event")
		}
	}

	return p, nil
}

// RemoveProduct deletes a product by id. Removing an id that does not exist
// is a no-op, not an error.
func (r *Registry) RemoveProduct(ctx context.Context, id string) error {
	var removed *product.TrackedProduct

	err := r.store.Update(func(products []product.TrackedProduct) []product.TrackedProduct {
		kept := products[:0]
		for _, p := range products {
			if p.ID == id {
				p := p
				removed = &p
				continue
			}
			kept = append(kept, p)
		}
		return kept
	})
	if err != nil {
		return err
	}

	if removed == nil {
		return nil
	}

	r.log.Info().Str("product_id", id).Str("url", removed.URL).Msg("Product removed")

	if err := r.publisher.Publish(ctx, publisher.Event{
		Type:      publisher.EventRemoved,
		ProductID: removed.ID,
		Name:      removed.DisplayName,
		URL:       removed.URL,
		At:        r.now(),
	}); err != nil {
		r.log.Warn().Err(err).Str("product_id", id).Msg("Failed to publish removed event")
	}

	return nil
}

// List returns a fresh snapshot of all tracked products
func (r *Registry) List() []product.TrackedProduct {
	return r.store.LoadAll()
}

// newID returns a fresh opaque product identifier.
func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
