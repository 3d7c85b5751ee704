package resolver

// SearchResult is one storefront candidate for a query.
type SearchResult struct {
	Name  string
	AppID int
	URL   string
}

// MatchKind discriminates the outcomes of a resolve.
type MatchKind int

const (
	// MatchNotFound means no strategy produced a candidate.
	MatchNotFound MatchKind = iota
	// MatchSingle means the query resolved to exactly one app id.
	MatchSingle
	// MatchAmbiguous means several candidates need user disambiguation.
	MatchAmbiguous
)

// Match is the tagged result of resolving a query. Exactly one of AppID
// (MatchSingle) or Candidates (MatchAmbiguous) is meaningful.
type Match struct {
	Kind       MatchKind
	AppID      int
	Candidates []SearchResult
}

// Single wraps an app id into a resolved Match.
func Single(appID int) Match {
	return Match{Kind: MatchSingle, AppID: appID}
}

// Ambiguous wraps candidate results into a Match needing disambiguation.
func Ambiguous(candidates []SearchResult) Match {
	return Match{Kind: MatchAmbiguous, Candidates: candidates}
}

// NotFound is the zero-result Match.
func NotFound() Match {
	return Match{Kind: MatchNotFound}
}
