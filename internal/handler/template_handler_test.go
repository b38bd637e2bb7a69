package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"oraculus/internal/handler"
	"oraculus/internal/template"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handler.NewTemplateHandler(template.NewManager(zap.NewNop()), zap.NewNop())
	h.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTemplateHandler_Health(t *testing.T) {
	rec := doRequest(t, newTestRouter(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTemplateHandler_ListAndGet(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Templates []template.Summary `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Templates, 2)
	assert.Equal(t, "fantasy_adventure", list.Templates[0].ID)

	rec = doRequest(t, router, http.MethodGet, "/api/templates/scifi_exploration", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var details template.Details
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Equal(t, "scifi_exploration", details.TemplateID)
	assert.Contains(t, details.Variables, "tech_level")

	rec = doRequest(t, router, http.MethodGet, "/api/templates/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTemplateHandler_Generate(t *testing.T) {
	router := newTestRouter()

	body := `{
		"variables": {"setting": "enchanted_forest", "magical_item": "mysterious_amulet"},
		"character": {"name": "Vera", "gender": "female", "age": "19", "situation": "a student who found an old map"}
	}`
	rec := doRequest(t, router, http.MethodPost, "/api/templates/fantasy_adventure/generate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool   `json:"success"`
		Story    string `json:"story"`
		CacheKey string `json:"cache_key"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Story, "enchanted_forest")
	assert.Contains(t, resp.Story, "young female")
	assert.Equal(t, "template_fantasy_adventure_female_young", resp.CacheKey)
}

func TestTemplateHandler_GenerateErrors(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/templates/nope/generate", `{"variables":{},"character":{}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/templates/fantasy_adventure/generate",
		`{"variables":{"setting":"the_mall"},"character":{}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Len(t, resp.Details, 2)

	rec = doRequest(t, router, http.MethodPost, "/api/templates/fantasy_adventure/generate", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
