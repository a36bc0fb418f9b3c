package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velo-ui/knowledge/internal/validation"
	"github.com/velo-ui/knowledge/pkg/utils"
)

func setupValidateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	handler := NewValidateHandler(validation.NewValidator(logger), logger)

	router := gin.New()
	router.POST("/api/v1/validate", handler.HandleValidate)
	return router
}

func postValidate(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleValidateCleanMarkup(t *testing.T) {
	router := setupValidateRouter()

	w := postValidate(t, router, map[string]string{
		"component": "Text Field",
		"markup": `<div class="velo-field">
  <label class="velo-label" for="email">Email</label>
  <p class="velo-field__hint" id="email-hint">We never share it.</p>
  <input class="velo-input" type="email" id="email" aria-describedby="email-hint">
</div>`,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Meta)
	assert.Equal(t, "validation", response.Meta.Subsystem)

	data, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var result ValidationResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, 100, result.Score)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Troubleshooting)
}

func TestHandleValidateBrokenMarkup(t *testing.T) {
	router := setupValidateRouter()

	w := postValidate(t, router, map[string]string{
		"component": "select",
		"markup":    `<select id="country"><option>NZ</option></select><label for="country">Country</label>`,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	data, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var result ValidationResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 70, result.Score)
	require.NotEmpty(t, result.Troubleshooting)
	assert.Equal(t, validation.PriorityCritical, result.Troubleshooting[0].Priority)
}

func TestHandleValidateMissingFields(t *testing.T) {
	router := setupValidateRouter()

	tests := []struct {
		name string
		body map[string]string
	}{
		{"no component", map[string]string{"markup": "<div></div>"}},
		{"no markup", map[string]string{"component": "button"}},
		{"empty body", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postValidate(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response utils.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, utils.CodeBadRequest, response.Code)
		})
	}
}

func TestHandleValidateMarkupTooLarge(t *testing.T) {
	router := setupValidateRouter()

	w := postValidate(t, router, map[string]string{
		"component": "button",
		"markup":    "<div>" + string(bytes.Repeat([]byte("x"), 256*1024)) + "</div>",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleValidateInvalidJSON(t *testing.T) {
	router := setupValidateRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
