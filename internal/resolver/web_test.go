package resolver

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseSearchDocument_AnchorFallback(t *testing.T) {
	// No data-ds-appid rows; the parser scans all anchors for /app/<id>/ hrefs.
	html := `<html><body>
<a href="/app/620/Portal_2/">Portal 2</a>
<a href="/app/620/Portal_2/">Portal 2 duplicate</a>
<a href="https://other.example/app/400/Portal/">Portal</a>
<a href="/news/">News</a>
</body></html>`
	r := New("https://store.example", "https://api.example", WithLogger(quietLogger()))
	results := r.parseSearchDocument(parseDoc(t, html))

	if len(results) != 2 {
		t.Fatalf("results = %+v, want 2 entries", results)
	}
	if results[0].AppID != 620 || results[1].AppID != 400 {
		t.Errorf("app ids = %d, %d", results[0].AppID, results[1].AppID)
	}
	// Relative hrefs become absolute against the store base URL.
	if results[0].URL != "https://store.example/app/620/Portal_2/" {
		t.Errorf("URL = %q", results[0].URL)
	}
	if results[1].URL != "https://other.example/app/400/Portal/" {
		t.Errorf("absolute URL rewritten: %q", results[1].URL)
	}
}

func TestParseSearchDocument_FallbackNameDefault(t *testing.T) {
	html := `<html><body><a href="/app/99/x/"><img src="cap.jpg"/></a></body></html>`
	r := New("https://store.example", "https://api.example", WithLogger(quietLogger()))
	results := r.parseSearchDocument(parseDoc(t, html))
	if len(results) != 1 || results[0].Name != "App 99" {
		t.Fatalf("results = %+v", results)
	}
}

func TestTruncateName(t *testing.T) {
	long := strings.Repeat("é", 150)
	if got := truncateName(long, 100); len([]rune(got)) != 100 {
		t.Errorf("truncateName rune length = %d", len([]rune(got)))
	}
	if got := truncateName("short", 100); got != "short" {
		t.Errorf("truncateName short = %q", got)
	}
}
