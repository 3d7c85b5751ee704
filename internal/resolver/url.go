package resolver

import (
	"regexp"
	"strconv"
	"strings"
)

// Storefront URL shapes carrying an app id, tried in order. The path segment
// form wins over the query-parameter forms when both are present.
var appIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/app/(\d+)`),
	regexp.MustCompile(`app/(\d+)`),
	regexp.MustCompile(`AppId=(\d+)`),
	regexp.MustCompile(`id=(\d+)`),
}

var storefrontDomains = []string{
	"store.steampowered.com",
	"steamcommunity.com",
}

// IsStorefrontURL reports whether the query contains a recognized store domain.
func IsStorefrontURL(query string) bool {
	for _, d := range storefrontDomains {
		if strings.Contains(query, d) {
			return true
		}
	}
	return false
}

// ExtractAppID pulls an app id out of a storefront URL. Returns 0 when no
// pattern matches.
func ExtractAppID(rawURL string) int {
	for _, re := range appIDPatterns {
		m := re.FindStringSubmatch(rawURL)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil || id <= 0 {
			continue
		}
		return id
	}
	return 0
}
