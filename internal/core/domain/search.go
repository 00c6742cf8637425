package domain

// Search scores. A title hit always outranks a content hit.
const (
	ScoreBoth    = 110
	ScoreTitle   = 100
	ScoreContent = 10
)

// MatchType records where a query matched.
type MatchType string

const (
	MatchTitle   MatchType = "title"
	MatchContent MatchType = "content"
	MatchBoth    MatchType = "both"
)

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means unlimited.
	Limit int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Score is the relevance score.
	Score int

	// MatchType is where the query matched.
	MatchType MatchType
}
