package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velo-ui/knowledge/internal/database"
	"github.com/velo-ui/knowledge/internal/models"
	"github.com/velo-ui/knowledge/internal/repository"
	"github.com/velo-ui/knowledge/internal/search"
	"github.com/velo-ui/knowledge/pkg/utils"
)

const (
	searchCacheTTL  = 5 * time.Minute
	popularCacheTTL = time.Minute
)

type SearchHandler struct {
	searchService *search.Service
	repoManager   *repository.RepositoryManager
	cache         *database.Cache
	logger        *logrus.Logger
}

func NewSearchHandler(
	searchService *search.Service,
	repoManager *repository.RepositoryManager,
	cache *database.Cache,
	logger *logrus.Logger,
) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		repoManager:   repoManager,
		cache:         cache,
		logger:        logger,
	}
}

// HandleSearch processes component documentation search requests
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	startTime := time.Now()

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid search request")
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid request format", err)
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeBadRequest, "Query cannot be empty", nil)
		return
	}
	if len(query) > 500 {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeBadRequest, "Query too long (max 500 characters)", nil)
		return
	}

	userSession := h.getUserSession(c)

	h.logger.WithFields(logrus.Fields{
		"query":        query,
		"user_session": userSession,
	}).Info("Processing search request")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var results []models.RelevanceCandidate

	cacheKey := h.cacheKey(query, req)
	cached := &models.SearchResponse{}
	if err := h.cache.GetCachedSearchResults(ctx, cacheKey, cached); err == nil {
		h.logger.Debug("Search results served from cache")
		results = cached.Results
	} else {
		var err error
		results, err = h.searchService.Search(ctx, query, req.Filters, req.Limit)
		if err != nil {
			h.logger.WithError(err).Error("Search failed")
			go h.trackSearchQuery(userSession, query, 0, time.Since(startTime), c)
			utils.ErrorResponse(c, http.StatusInternalServerError, utils.CodeSearchError, "Search failed", err)
			return
		}

		resp := &models.SearchResponse{Results: results, Count: len(results)}
		if err := h.cache.CacheSearchResults(ctx, cacheKey, resp, searchCacheTTL); err != nil {
			h.logger.WithError(err).Warn("Failed to cache search results")
		}
	}

	responseTime := time.Since(startTime)

	go h.trackSearchQuery(userSession, query, len(results), responseTime, c)
	go h.updatePopularQueries(query, len(results), responseTime)

	h.logger.WithFields(logrus.Fields{
		"results_count": len(results),
		"response_time": responseTime.Milliseconds(),
	}).Info("Search completed")

	utils.SuccessResponse(c, http.StatusOK, "Search completed",
		models.SearchResponse{Results: results, Count: len(results)},
		utils.NewMeta("search", startTime))
}

// HandleSuggestions returns search suggestions for a partial query,
// blending popular queries with component names from the corpus.
func (h *SearchHandler) HandleSuggestions(c *gin.Context) {
	startTime := time.Now()

	query := c.Query("q")
	if query == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeBadRequest, "Query parameter 'q' is required", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit > 10 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	suggestions, err := h.searchService.Suggest(ctx, query, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build suggestions")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.CodeSearchError, "Failed to get suggestions", err)
		return
	}

	// Top up with popular queries containing the input.
	if len(suggestions) < limit {
		popular, err := h.popularQueries(ctx, limit*2)
		if err != nil {
			h.logger.WithError(err).Warn("Failed to load popular queries")
		} else {
			queryLower := strings.ToLower(query)
			for _, p := range popular {
				if len(suggestions) >= limit {
					break
				}
				if strings.Contains(strings.ToLower(p.QueryText), queryLower) && !containsFold(suggestions, p.QueryText) {
					suggestions = append(suggestions, p.QueryText)
				}
			}
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "Suggestions retrieved",
		models.SuggestionsResponse{Suggestions: suggestions},
		utils.NewMeta("search", startTime))
}

// popularQueries reads the popular-query list through the cache. The
// list changes slowly, so a short TTL keeps suggestion requests off the
// analytics table.
func (h *SearchHandler) popularQueries(ctx context.Context, limit int) ([]models.PopularQuery, error) {
	if cached, err := h.cache.GetCachedPopularQueries(ctx); err == nil {
		return cached, nil
	}

	popular, err := h.repoManager.PopularQuery.GetTop(limit)
	if err != nil {
		return nil, err
	}

	if err := h.cache.CachePopularQueries(ctx, popular, popularCacheTTL); err != nil {
		h.logger.WithError(err).Warn("Failed to cache popular queries")
	}
	return popular, nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// Helper methods

func (h *SearchHandler) getUserSession(c *gin.Context) string {
	if session := c.GetHeader("X-Session-ID"); session != "" {
		return session
	}
	return utils.GenerateSessionID(c.ClientIP() + c.GetHeader("User-Agent"))
}

func (h *SearchHandler) cacheKey(query string, req models.SearchRequest) string {
	requiresJS := "any"
	if req.Filters.RequiresJS != nil {
		requiresJS = strconv.FormatBool(*req.Filters.RequiresJS)
	}

	parts := []string{
		strings.ToLower(strings.TrimSpace(query)),
		req.Filters.Category,
		req.Filters.Tag,
		req.Filters.Complexity,
		requiresJS,
		strconv.Itoa(req.Limit),
	}
	return utils.MD5Hash(strings.Join(parts, "|"))
}

func (h *SearchHandler) trackSearchQuery(userSession, query string, resultsCount int, responseTime time.Duration, c *gin.Context) {
	searchQuery := &models.SearchQuery{
		QueryText:       query,
		UserSession:     userSession,
		ResultsCount:    resultsCount,
		SearchTimestamp: time.Now(),
		ResponseTimeMs:  int(responseTime.Milliseconds()),
		UserAgent:       c.GetHeader("User-Agent"),
		IPAddress:       c.ClientIP(),
	}

	if err := h.repoManager.SearchQuery.Create(searchQuery); err != nil {
		h.logger.WithError(err).Error("Failed to track search query")
	}
}

func (h *SearchHandler) updatePopularQueries(query string, resultsCount int, responseTime time.Duration) {
	if err := h.repoManager.PopularQuery.IncrementCount(query); err != nil {
		h.logger.WithError(err).Error("Failed to update popular queries")
		return
	}

	if err := h.repoManager.PopularQuery.UpdateStats(query, float64(resultsCount), int(responseTime.Milliseconds())); err != nil {
		h.logger.WithError(err).Error("Failed to update query stats")
	}
}
