package monitor

import (
	"context"
	"sync"
	"time"

	"sjsage522/pricewatcher/internal/extractor"
	"sjsage522/pricewatcher/internal/fetcher"
	"sjsage522/pricewatcher/internal/product"
	"sjsage522/pricewatcher/logger"
	"sjsage522/pricewatcher/services/notifier"
	"sjsage522/pricewatcher/services/publisher"
	"sjsage522/pricewatcher/services/store"
)

// Monitor owns the repeating sweep over all tracked products: fetch each
// product page, extract a price, update the record, and decide whether a
// drop notification fires. State is persisted once per sweep.
type Monitor struct {
	store     store.PriceStore
	fetcher   fetcher.Fetcher
	extractor extractor.Extractor
	notifier  notifier.Notifier
	publisher publisher.Publisher
	interval  time.Duration
	now       func() time.Time
	log       *logger.Logger
}

// New creates a new monitor
func New(
	st store.PriceStore,
	fetch fetcher.Fetcher,
	extract extractor.Extractor,
	notify notifier.Notifier,
	publish publisher.Publisher,
	interval time.Duration,
) *Monitor {
	return &Monitor{
		store:     st,
		fetcher:   fetch,
		extractor: extract,
		notifier:  notify,
		publisher: publish,
		interval:  interval,
		now:       time.Now,
		log:       logger.ForMonitor(),
	}
}

// Run sweeps immediately, then on every interval until the context is done.
func (m *Monitor) Run(ctx context.Context) {
	m.log.Info().Dur("interval", m.interval).Msg("Monitor started")

	m.Sweep(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("Monitor stopped")
			return
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// Sweep runs one full pass over every tracked product. Products are checked
// concurrently; a failure on one page never affects the others. The updated
// collection is persisted once at the end of the sweep.
func (m *Monitor) Sweep(ctx context.Context) {
	start := time.Now()

	products := m.store.LoadAll()
	if len(products) == 0 {
		m.log.Debug().Msg("No products to check")
		return
	}

	var wg sync.WaitGroup
	for i := range products {
		wg.Add(1)
		go func(p *product.TrackedProduct) {
			defer wg.Done()
			m.checkProduct(ctx, p)
		}(&products[i])
	}
	wg.Wait()

	// Merge sweep results onto the latest persisted collection so products
	// added or removed mid-sweep are not clobbered by this save.
	updated := make(map[string]product.TrackedProduct, len(products))
	for _, p := range products {
		updated[p.ID] = p
	}
	err := m.store.Update(func(current []product.TrackedProduct) []product.TrackedProduct {
		for i := range current {
			if p, ok := updated[current[i].ID]; ok {
				current[i] = p
			}
		}
		return current
	})
	if err != nil {
		// Silent write loss destroys price history; surface it to the
		// operator log. The next sweep rebuilds from scratch anyway.
		m.log.Error().Err(err).Msg("Failed to persist sweep results")
	}

	m.log.Info().
		Int("products", len(products)).
		Dur("elapsed", time.Since(start)).
		Msg("Sweep complete")
}

// checkProduct runs the fetch-extract-update cycle for one product. Any
// fetch or extraction failure leaves the record untouched so a valid prior
// observation is never overwritten by a failed one.
func (m *Monitor) checkProduct(ctx context.Context, p *product.TrackedProduct) {
	body, err := m.fetcher.Fetch(ctx, p.URL)
	if err != nil {
		m.log.Warn().Err(err).Str("product_id", p.ID).Str("url", p.URL).Msg("Fetch failed; keeping previous observation")
		return
	}

	res := m.extractor.Extract(body)
	if res.Price == nil {
		m.log.Warn().Str("product_id", p.ID).Str("url", p.URL).Msg("No price extracted; keeping previous observation")
		return
	}

	dropped, oldPrice := p.Apply(product.Observation{
		Price: *res.Price,
		Name:  res.Name,
		At:    m.now(),
	})

	m.publishEvent(ctx, publisher.Event{
		Type:      publisher.EventObservation,
		ProductID: p.ID,
		Name:      p.DisplayName,
		URL:       p.URL,
		Price:     res.Price,
		At:        m.now(),
	})

	if !dropped {
		return
	}

	drop := oldPrice - *res.Price
	m.log.Info().
		Str("product_id", p.ID).
		Float64("old_price", oldPrice).
		Float64("new_price", *res.Price).
		Float64("drop", drop).
		Msg("Price drop detected")

	message := notifier.DropMessage(p.DisplayName, oldPrice, *res.Price, p.URL)
	if err := m.notifier.Notify(ctx, message); err != nil {
		m.log.Warn().Err(err).Str("product_id", p.ID).Msg("Failed to send drop notification")
	}

	m.publishEvent(ctx, publisher.Event{
		Type:       publisher.EventDrop,
		ProductID:  p.ID,
		Name:       p.DisplayName,
		URL:        p.URL,
		Price:      res.Price,
		OldPrice:   &oldPrice,
		DropAmount: &drop,
		At:         m.now(),
	})
}

func (m *Monitor) publishEvent(ctx context.Context, event publisher.Event) {
	if err := m.publisher.Publish(ctx, event); err != nil {
		m.log.Warn().Err(err).Str("type", string(event.Type)).Msg("Failed to publish event")
	}
}
