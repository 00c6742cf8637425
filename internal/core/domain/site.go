package domain

// SiteInfo describes the documentation site for API consumers.
type SiteInfo struct {
	Title       string
	Description string
	Version     string
}
