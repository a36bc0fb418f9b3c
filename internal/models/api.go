package models

// API request/response shapes.

type SearchRequest struct {
	Query   string        `json:"query" binding:"required"`
	Filters SearchFilters `json:"filters"`
	Limit   int           `json:"limit"`
}

type SearchResponse struct {
	Results []RelevanceCandidate `json:"results"`
	Count   int                  `json:"count"`
}

type ValidateRequest struct {
	Component string `json:"component" binding:"required"`
	Markup    string `json:"markup" binding:"required"`
}

type ComponentResponse struct {
	Document Document        `json:"document"`
	Examples []CodeExample   `json:"examples"`
	Guidance []GuidanceEntry `json:"guidance"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
