package models

// SearchFilters narrow candidate retrieval. All fields are optional.
type SearchFilters struct {
	Category   string `json:"category,omitempty"`
	Tag        string `json:"tag,omitempty"`
	Complexity string `json:"complexity,omitempty"`
	RequiresJS *bool  `json:"requires_js,omitempty"`
}

// RelevanceCandidate is a scored search hit. Ephemeral: produced during a
// search call, discarded after ranking, never persisted.
type RelevanceCandidate struct {
	DocumentID    uint     `json:"document_id"`
	Title         string   `json:"title"`
	ComponentName string   `json:"component_name"`
	Category      string   `json:"category"`
	URL           string   `json:"url"`
	Tags          []string `json:"tags"`
	Score         int      `json:"score"`
}
