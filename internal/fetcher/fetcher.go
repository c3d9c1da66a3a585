package fetcher

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sjsage522/pricewatcher/helpers"
	"sjsage522/pricewatcher/logger"
	apperrors "sjsage522/pricewatcher/pkg/errors"
	"sjsage522/pricewatcher/services/cache"
)

// defaultCooldown is how long a page is skipped after it rate-limits us.
const defaultCooldown = 10 * time.Minute

// Fetcher retrieves raw page content for a URL with a bounded timeout.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches pages over HTTP with a browser-like identity. After a
// rate-limiting response it records a cooldown key and refuses further
// fetches of that page until the cooldown expires.
type HTTPFetcher struct {
	client   *http.Client
	cache    cache.CacheService
	cooldown time.Duration
	log      *logger.Logger
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher with the given request timeout. cacheSvc
// tracks rate-limit cooldowns; pass a LocalCache when memcache is absent.
func NewHTTPFetcher(timeout time.Duration, cacheSvc cache.CacheService) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		cache:    cacheSvc,
		cooldown: defaultCooldown,
		log:      logger.ForFetcher(),
	}
}

// Fetch retrieves the page content for the URL
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := cooldownKey(url)

	if _, err := f.cache.Get(key); err == nil {
		return nil, apperrors.NewTransport("fetcher", fmt.Sprintf("%s is cooling down after rate limiting", url), nil)
	}

	body, err := helpers.FetchPage(ctx, f.client, url)
	if err != nil {
		if errors.Is(err, helpers.ErrRateLimited) {
			if setErr := f.cache.Set(key, []byte("1"), f.cooldown); setErr != nil {
				f.log.Warn().Err(setErr).Str("url", url).Msg("Failed to record rate-limit cooldown")
			}
		}
		return nil, apperrors.NewTransport("fetcher", "failed to fetch page", err)
	}

	return body, nil
}

// cooldownKey hashes the URL so it stays within memcache key limits.
func cooldownKey(url string) string {
	return fmt.Sprintf("cooldown:%x", sha1.Sum([]byte(url)))
}
