package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/velo-ui/knowledge/internal/database"
	"github.com/velo-ui/knowledge/internal/models"
	"github.com/velo-ui/knowledge/internal/repository"
	"github.com/velo-ui/knowledge/internal/search"
	"github.com/velo-ui/knowledge/pkg/utils"
)

// unreachableCache backs the cache with a redis client nothing listens
// on, so every cache call quickly takes the miss path.
func unreachableCache(logger *logrus.Logger) *database.Cache {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return database.NewCache(client, logger)
}

type stubDocumentRepo struct {
	doc *models.Document
	err error
}

func (s *stubDocumentRepo) Create(*models.Document) error {
	return nil
}

func (s *stubDocumentRepo) GetByID(uint) (*models.Document, error) {
	return s.doc, s.err
}

func (s *stubDocumentRepo) GetByComponentKey(string) (*models.Document, error) {
	return s.doc, s.err
}

func (s *stubDocumentRepo) GetSiblings(*models.Document) ([]models.Document, error) {
	return nil, nil
}

func (s *stubDocumentRepo) GetAll() ([]models.Document, error) {
	return nil, nil
}

func (s *stubDocumentRepo) Update(*models.Document) error {
	return nil
}

func (s *stubDocumentRepo) Delete(uint) error {
	return nil
}

func (s *stubDocumentRepo) FetchCandidates(context.Context, []string, models.SearchFilters, int) ([]models.Document, error) {
	return nil, nil
}

type stubPopularRepo struct {
	top []models.PopularQuery
}

func (s *stubPopularRepo) IncrementCount(string) error {
	return nil
}

func (s *stubPopularRepo) GetTop(int) ([]models.PopularQuery, error) {
	return s.top, nil
}

func (s *stubPopularRepo) UpdateStats(string, float64, int) error {
	return nil
}

type stubCandidateSource struct {
	docs []models.Document
}

func (s *stubCandidateSource) FetchCandidates(context.Context, []string, models.SearchFilters, int) ([]models.Document, error) {
	return s.docs, nil
}

func TestHandleGetComponentNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	repoManager := &repository.RepositoryManager{
		Document: &stubDocumentRepo{err: gorm.ErrRecordNotFound},
	}
	handler := NewComponentHandler(repoManager, unreachableCache(logger), logger)

	router := gin.New()
	router.GET("/api/v1/components/:name", handler.HandleGetComponent)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/components/carousel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, utils.CodeComponentNotFound, response.Code)
}

func TestHandleSuggestionsBlendsPopularQueries(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	source := &stubCandidateSource{docs: []models.Document{{ComponentName: "Select"}}}
	repoManager := &repository.RepositoryManager{
		PopularQuery: &stubPopularRepo{top: []models.PopularQuery{
			{QueryText: "select dropdown"},
			{QueryText: "modal focus trap"},
		}},
	}
	handler := NewSearchHandler(search.NewService(source, logger), repoManager, unreachableCache(logger), logger)

	router := gin.New()
	router.GET("/api/v1/suggestions", handler.HandleSuggestions)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggestions?q=sel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	data, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var result models.SuggestionsResponse
	require.NoError(t, json.Unmarshal(data, &result))

	// Corpus component name first, then the matching popular query; the
	// non-matching popular query is filtered out.
	assert.Equal(t, []string{"Select", "select dropdown"}, result.Suggestions)
}
