package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"
)

// The storefront serves different markup to non-browser agents, so the search
// request mimics a desktop browser.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Connection":      "keep-alive",
}

var appPathRe = regexp.MustCompile(`/app/(\d+)/`)

// searchStore runs a storefront text search and parses the result markup.
// Results are memoized per raw query text (case-sensitive) for the process
// lifetime; errors yield zero results and are not cached.
func (r *Resolver) searchStore(ctx context.Context, query string) []SearchResult {
	if cached, ok := r.searchCache.Get(query); ok {
		return cached.([]SearchResult)
	}

	results, err := r.fetchStoreResults(ctx, query)
	if err != nil {
		r.log.WithField("query", query).WithError(err).Warn("store search failed")
		return nil
	}

	r.searchCache.Set(query, results, gocache.NoExpiration)
	return results
}

func (r *Resolver) fetchStoreResults(ctx context.Context, query string) ([]SearchResult, error) {
	searchURL := fmt.Sprintf("%s/search/?term=%s", r.storeURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store search request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("store search failed: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot parse search markup: %w", err)
	}
	return r.parseSearchDocument(doc), nil
}

// parseSearchDocument extracts candidates from search result markup. Result
// rows are anchors carrying a data-ds-appid attribute; when none are present
// it falls back to scanning every anchor for an /app/<id>/ href. Candidates
// are deduplicated by app id in first-seen order and capped at maxWebResults.
func (r *Resolver) parseSearchDocument(doc *goquery.Document) []SearchResult {
	var results []SearchResult

	doc.Find("a[data-ds-appid]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw, _ := sel.Attr("data-ds-appid")
		// Bundles list several ids comma-separated; the first one is the app.
		idText, _, _ := strings.Cut(raw, ",")
		id, err := strconv.Atoi(idText)
		if err != nil || id <= 0 {
			return true
		}
		name := strings.TrimSpace(sel.Find("span.title").First().Text())
		if name == "" {
			return true
		}
		href, _ := sel.Attr("href")
		results = append(results, SearchResult{Name: name, AppID: id, URL: href})
		return len(results) < maxWebResults
	})

	if len(results) == 0 {
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			m := appPathRe.FindStringSubmatch(href)
			if m == nil {
				return
			}
			id, err := strconv.Atoi(m[1])
			if err != nil || id <= 0 {
				return
			}
			name := strings.TrimSpace(sel.Text())
			if name == "" {
				name = fmt.Sprintf("App %d", id)
			}
			results = append(results, SearchResult{
				Name:  truncateName(name, 100),
				AppID: id,
				URL:   absoluteStoreURL(r.storeURL, href),
			})
		})
	}

	return dedupeByAppID(results, maxWebResults)
}

func truncateName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func absoluteStoreURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return base + href
}

func dedupeByAppID(in []SearchResult, limit int) []SearchResult {
	seen := make(map[int]struct{}, len(in))
	out := make([]SearchResult, 0, len(in))
	for _, res := range in {
		if _, ok := seen[res.AppID]; ok {
			continue
		}
		seen[res.AppID] = struct{}{}
		out = append(out, res)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
