// Package resolver turns free-form user input — a game name, a numeric app id,
// or a storefront URL — into app id candidates.
package resolver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const maxWebResults = 10

// Resolver resolves queries against the Steam storefront, falling back to the
// full app catalog when web search yields nothing. It owns its caches: web
// search results are memoized per raw query text and the catalog is fetched at
// most once, both for the life of the process.
type Resolver struct {
	client      *http.Client
	storeURL    string
	apiURL      string
	searchCache *gocache.Cache
	catalog     *catalog
	log         *logrus.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) { r.client = c }
}

// WithLogger replaces the default logger.
func WithLogger(l *logrus.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// New returns a Resolver using the given storefront and Web API base URLs.
func New(storeURL, apiURL string, opts ...Option) *Resolver {
	r := &Resolver{
		client:      &http.Client{Timeout: 15 * time.Second},
		storeURL:    storeURL,
		apiURL:      apiURL,
		searchCache: gocache.New(gocache.NoExpiration, 0),
		log:         logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(r)
	}
	r.catalog = newCatalog(r.client, r.apiURL, r.log)
	return r
}

// Resolve runs the resolution strategies in order, first success wins:
// storefront URL extraction, literal numeric id, storefront web search, then
// catalog exact/approximate match. Network and parse failures inside a
// strategy are logged and treated as zero results for that strategy.
func (r *Resolver) Resolve(ctx context.Context, query string) Match {
	if IsStorefrontURL(query) {
		if id := ExtractAppID(query); id > 0 {
			return Single(id)
		}
	}

	if isDigits(query) {
		if id, err := strconv.Atoi(query); err == nil && id > 0 {
			return Single(id)
		}
	}

	if results := r.searchStore(ctx, query); len(results) > 0 {
		if len(results) == 1 {
			return Single(results[0].AppID)
		}
		return Ambiguous(results)
	}

	return r.catalog.lookup(ctx, query)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
