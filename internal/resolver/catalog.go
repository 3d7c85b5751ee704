package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

const (
	fuzzyCutoff  = 0.7
	fuzzyMaxHits = 5
)

// catalog is the lazily fetched full app list, used as the last-resort lookup
// when storefront search yields nothing. It is fetched at most once per
// process; a failed fetch leaves it empty and lookups report not found.
type catalog struct {
	client *http.Client
	apiURL string
	log    *logrus.Logger

	once    sync.Once
	byName  map[string]int // case-folded name → app id
	names   []string       // folded names in catalog order, for fuzzy scans
	display map[string]string
}

type appListResponse struct {
	AppList struct {
		Apps []struct {
			AppID int    `json:"appid"`
			Name  string `json:"name"`
		} `json:"apps"`
	} `json:"applist"`
}

func newCatalog(client *http.Client, apiURL string, log *logrus.Logger) *catalog {
	return &catalog{client: client, apiURL: apiURL, log: log}
}

func (c *catalog) load(ctx context.Context) {
	c.once.Do(func() {
		if err := c.fetch(ctx); err != nil {
			c.log.WithError(err).Warn("cannot fetch app catalog")
		}
	})
}

func (c *catalog) fetch(ctx context.Context) error {
	url := c.apiURL + "/ISteamApps/GetAppList/v2/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("app list request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("app list request failed: %s", resp.Status)
	}

	var parsed appListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("cannot decode app list: %w", err)
	}

	fold := cases.Fold()
	c.byName = make(map[string]int, len(parsed.AppList.Apps))
	c.display = make(map[string]string, len(parsed.AppList.Apps))
	c.names = make([]string, 0, len(parsed.AppList.Apps))
	for _, app := range parsed.AppList.Apps {
		if app.Name == "" {
			continue
		}
		key := fold.String(app.Name)
		if _, ok := c.byName[key]; ok {
			continue
		}
		c.byName[key] = app.AppID
		c.display[key] = app.Name
		c.names = append(c.names, key)
	}
	return nil
}

// lookup resolves a query against the catalog: case-folded exact match first,
// then approximate matching with a similarity cutoff.
func (c *catalog) lookup(ctx context.Context, query string) Match {
	c.load(ctx)
	if len(c.byName) == 0 {
		return NotFound()
	}

	key := cases.Fold().String(query)
	if id, ok := c.byName[key]; ok {
		return Single(id)
	}

	type scored struct {
		name  string
		score float64
	}
	metric := metrics.NewSorensenDice()
	var hits []scored
	for _, name := range c.names {
		score := strutil.Similarity(key, name, metric)
		if score < fuzzyCutoff {
			continue
		}
		hits = append(hits, scored{name, score})
	}
	if len(hits) == 0 {
		return NotFound()
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > fuzzyMaxHits {
		hits = hits[:fuzzyMaxHits]
	}

	candidates := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		candidates = append(candidates, SearchResult{
			Name:  c.display[h.name],
			AppID: c.byName[h.name],
		})
	}
	return Ambiguous(candidates)
}
