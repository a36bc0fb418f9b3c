package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/velo-ui/knowledge/internal/models"
)

// retrievalCap bounds how many raw candidates the store may hand back
// before scoring.
const retrievalCap = 100

// CandidateSource is the one capability the search pipeline does not
// implement itself: a pure, unordered read over the corpus snapshot.
// Implementations must not apply their own relevance ordering.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, queries []string, filters models.SearchFilters, cap int) ([]models.Document, error)
}

type Service struct {
	source CandidateSource
	logger *logrus.Logger
}

func NewService(source CandidateSource, logger *logrus.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// Search expands the query, retrieves raw candidates and returns them
// ranked and truncated to limit. Retrieval is the only step that can
// block or fail; scoring itself has no error conditions.
func (s *Service) Search(ctx context.Context, query string, filters models.SearchFilters, limit int) ([]models.RelevanceCandidate, error) {
	expanded := Expand(query)

	s.logger.WithFields(logrus.Fields{
		"query":      query,
		"expansions": len(expanded),
	}).Debug("Query expanded")

	docs, err := s.source.FetchCandidates(ctx, expanded, filters, retrievalCap)
	if err != nil {
		s.logger.WithError(err).Error("Candidate retrieval failed")
		return nil, fmt.Errorf("candidate retrieval failed: %w", err)
	}

	candidates := make([]models.RelevanceCandidate, 0, len(docs))
	for _, doc := range docs {
		tags := make([]string, 0, len(doc.Tags))
		for _, t := range doc.Tags {
			tags = append(tags, t.Tag)
		}
		candidates = append(candidates, models.RelevanceCandidate{
			DocumentID:    doc.ID,
			Title:         doc.Title,
			ComponentName: doc.ComponentName,
			Category:      doc.Category,
			URL:           doc.URL,
			Tags:          tags,
		})
	}

	ranked := Rank(candidates, query, expanded, limit)

	s.logger.WithFields(logrus.Fields{
		"query":  query,
		"raw":    len(docs),
		"ranked": len(ranked),
	}).Debug("Search completed")

	return ranked, nil
}

// Suggest derives contextual search suggestions for a partial query from
// the guidance corpus: component names whose synonym expansions overlap
// the input, capped at limit.
func (s *Service) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	if limit <= 0 || limit > 10 {
		limit = 5
	}

	expanded := Expand(partial)
	docs, err := s.source.FetchCandidates(ctx, expanded, models.SearchFilters{}, retrievalCap)
	if err != nil {
		return nil, fmt.Errorf("suggestion retrieval failed: %w", err)
	}

	seen := map[string]bool{}
	var suggestions []string
	for _, doc := range docs {
		name := strings.TrimSpace(doc.ComponentName)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		suggestions = append(suggestions, name)
		if len(suggestions) >= limit {
			break
		}
	}
	return suggestions, nil
}
