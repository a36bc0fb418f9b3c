package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velo-ui/knowledge/internal/models"
	"github.com/velo-ui/knowledge/pkg/utils"
)

func searchReq(query string, limit int) models.SearchRequest {
	return models.SearchRequest{Query: query, Limit: limit}
}

// The request-validation paths return before the handler touches the
// cache or the store, so a handler with nil backends exercises them.
func setupSearchRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	handler := NewSearchHandler(nil, nil, nil, logger)

	router := gin.New()
	router.POST("/api/v1/search", handler.HandleSearch)
	return router
}

func postSearch(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleSearchRejectsMissingQuery(t *testing.T) {
	router := setupSearchRouter()

	w := postSearch(t, router, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, utils.CodeBadRequest, response.Code)
}

func TestHandleSearchRejectsBlankQuery(t *testing.T) {
	router := setupSearchRouter()

	w := postSearch(t, router, `{"query": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Message, "empty")
}

func TestHandleSearchRejectsOverlongQuery(t *testing.T) {
	router := setupSearchRouter()

	w := postSearch(t, router, `{"query": "`+strings.Repeat("q", 501)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Message, "too long")
}

func TestHandleSearchRejectsInvalidJSON(t *testing.T) {
	router := setupSearchRouter()

	w := postSearch(t, router, `{"query": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchCacheKeyIsStable(t *testing.T) {
	h := &SearchHandler{}

	base := h.cacheKey("button", searchReq("button", 10))
	assert.Equal(t, base, h.cacheKey("Button  ", searchReq("Button  ", 10)), "case and whitespace must not change the key")
	assert.NotEqual(t, base, h.cacheKey("button", searchReq("button", 20)), "limit is part of the key")
}

func TestSearchCacheKeyCoversRequiresJS(t *testing.T) {
	h := &SearchHandler{}

	jsTrue := true
	jsFalse := false

	withJS := searchReq("button", 10)
	withJS.Filters.RequiresJS = &jsTrue
	withoutJS := searchReq("button", 10)
	withoutJS.Filters.RequiresJS = &jsFalse
	unset := searchReq("button", 10)

	keyTrue := h.cacheKey("button", withJS)
	keyFalse := h.cacheKey("button", withoutJS)
	keyUnset := h.cacheKey("button", unset)

	assert.NotEqual(t, keyTrue, keyFalse, "opposite requires_js filters must not share a cache entry")
	assert.NotEqual(t, keyTrue, keyUnset)
	assert.NotEqual(t, keyFalse, keyUnset)

	same := searchReq("button", 10)
	jsAgain := true
	same.Filters.RequiresJS = &jsAgain
	assert.Equal(t, keyTrue, h.cacheKey("button", same), "equal filter state must produce the same key")
}
