package registry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/pricewatcher/internal/extractor"
	"sjsage522/pricewatcher/internal/fetcher"
	"sjsage522/pricewatcher/internal/product"
	"sjsage522/pricewatcher/services/notifier"
	"sjsage522/pricewatcher/services/publisher"
	"sjsage522/pricewatcher/services/store"
)

type stubFetcher struct {
	body []byte
	err  error
}

var _ fetcher.Fetcher = (*stubFetcher)(nil)

func (f *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.body, f.err
}

type stubExtractor struct {
	result extractor.Result
}

var _ extractor.Extractor = (*stubExtractor)(nil)

func (e *stubExtractor) Extract(content []byte) extractor.Result {
	return e.result
}

type recordingNotifier struct {
	messages []string
}

var _ notifier.Notifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) Notify(ctx context.Context, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

type recordingPublisher struct {
	events []publisher.Event
}

var _ publisher.Publisher = (*recordingPublisher)(nil)

func (p *recordingPublisher) Publish(ctx context.Context, event publisher.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	store     *store.FileStore
	fetcher   *stubFetcher
	extractor *stubExtractor
	notifier  *recordingNotifier
	publisher *recordingPublisher
	registry  *Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:     store.NewFileStore(filepath.Join(t.TempDir(), "products.json")),
		fetcher:   &stubFetcher{},
		extractor: &stubExtractor{},
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
	}
	f.registry = New(f.store, f.fetcher, f.extractor, f.notifier, f.publisher)
	return f
}

func TestAddProductObservedPrice(t *testing.T) {
	f := newFixture(t)
	price := 1000.0
	f.fetcher.body = []byte("page")
	f.extractor.result = extractor.Result{Price: &price, Name: "Keyboard"}

	p, err := f.registry.AddProduct(context.Background(), "https://example.com/item")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Keyboard", p.DisplayName)
	assert.Equal(t, 1000.0, *p.CurrentPrice)
	assert.Equal(t, 1000.0, *p.LowestPrice)
	assert.NotNil(t, p.LastCheckedAt)

	// Persisted immediately
	stored := f.store.LoadAll()
	require.Len(t, stored, 1)
	assert.Equal(t, p.ID, stored[0].ID)

	// New-product notice, never a drop notice
	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "NEW PRODUCT ADDED")

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, publisher.EventAdded, f.publisher.events[0].Type)
}

func TestAddProductFailedScrape(t *testing.T) {
	f := newFixture(t)
	f.fetcher.err = errors.New("connection refused")

	p, err := f.registry.AddProduct(context.Background(), "https://example.com/item")
	require.NoError(t, err, "a failed first scrape still registers the product")

	assert.Equal(t, product.UnknownName, p.DisplayName)
	assert.Nil(t, p.CurrentPrice)
	assert.Nil(t, p.LowestPrice)
	assert.Nil(t, p.LastCheckedAt)

	assert.Len(t, f.store.LoadAll(), 1)
	assert.Empty(t, f.notifier.messages, "no notification without an observed price")
	assert.Empty(t, f.publisher.events)
}

func TestAddProductNameWithoutPrice(t *testing.T) {
	f := newFixture(t)
	f.fetcher.body = []byte("page")
	f.extractor.result = extractor.Result{Name: "Out of Stock Item"}

	p, err := f.registry.AddProduct(context.Background(), "https://example.com/item")
	require.NoError(t, err)

	assert.Equal(t, "Out of Stock Item", p.DisplayName)
	assert.Nil(t, p.CurrentPrice)
	assert.Empty(t, f.notifier.messages)
}

func TestAddProductEmptyURL(t *testing.T) {
	f := newFixture(t)

	_, err := f.registry.AddProduct(context.Background(), "   ")
	assert.Error(t, err)
	assert.Empty(t, f.store.LoadAll())
}

func TestAddProductUniqueIDs(t *testing.T) {
	f := newFixture(t)
	f.fetcher.err = errors.New("offline")

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		p, err := f.registry.AddProduct(context.Background(), "https://example.com/item")
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestRemoveProduct(t *testing.T) {
	f := newFixture(t)
	f.fetcher.err = errors.New("offline")

	p, err := f.registry.AddProduct(context.Background(), "https://example.com/item")
	require.NoError(t, err)

	require.NoError(t, f.registry.RemoveProduct(context.Background(), p.ID))
	assert.Empty(t, f.store.LoadAll())

	removed := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, publisher.EventRemoved, removed.Type)
	assert.Equal(t, p.ID, removed.ProductID)
}

func TestRemoveNonexistentProductIsNoop(t *testing.T) {
	f := newFixture(t)
	f.fetcher.err = errors.New("offline")

	_, err := f.registry.AddProduct(context.Background(), "https://example.com/item")
	require.NoError(t, err)
	before := f.store.LoadAll()

	require.NoError(t, f.registry.RemoveProduct(context.Background(), "no-such-id"))

	assert.Equal(t, before, f.store.LoadAll())
	assert.Empty(t, f.publisher.events)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	f.fetcher.err = errors.New("offline")

	assert.Empty(t, f.registry.List())

	_, err := f.registry.AddProduct(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	_, err = f.registry.AddProduct(context.Background(), "https://example.com/b")
	require.NoError(t, err)

	assert.Len(t, f.registry.List(), 2)
}
