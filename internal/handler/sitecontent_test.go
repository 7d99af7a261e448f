package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContentRouter(t *testing.T, devMode bool) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	contentFile := filepath.Join(t.TempDir(), "site.json")
	seed := map[string]any{
		"venue":    "The Old Barn",
		"schedule": []any{"ceremony", "dinner"},
		"contact":  map[string]any{"email": "couple@example.com"},
	}
	data, err := json.Marshal(seed)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(contentFile, data, 0644))

	h := NewSiteContentHandler(contentFile, devMode, zerolog.Nop())
	r := gin.New()
	r.GET("/api/site-config", h.Get)
	r.POST("/api/site-config", h.Update)
	return r, contentFile
}

func TestSiteContent_Get(t *testing.T) {
	r, _ := setupContentRouter(t, true)

	req, _ := http.NewRequest("GET", "/api/site-config", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The Old Barn", resp.Data["venue"])
}

func TestSiteContent_GetNotFoundOutsideDevelopment(t *testing.T) {
	r, _ := setupContentRouter(t, false)

	req, _ := http.NewRequest("GET", "/api/site-config", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSiteContent_UpdateShallowMerge(t *testing.T) {
	r, contentFile := setupContentRouter(t, true)

	body, _ := json.Marshal(map[string]any{"venue": "Lakeside Pavilion", "faq": []any{"parking"}})
	req, _ := http.NewRequest("POST", "/api/site-config", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Posted keys overwrite, everything else survives.
	saved, err := os.ReadFile(contentFile)
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(saved, &data))
	assert.Equal(t, "Lakeside Pavilion", data["venue"])
	assert.NotNil(t, data["schedule"])
	assert.NotNil(t, data["contact"])
	assert.NotNil(t, data["faq"])
}

func TestSiteContent_UpdateForbiddenOutsideDevelopment(t *testing.T) {
	r, contentFile := setupContentRouter(t, false)

	body, _ := json.Marshal(map[string]any{"venue": "Lakeside Pavilion"})
	req, _ := http.NewRequest("POST", "/api/site-config", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "development mode")

	// The file is untouched.
	saved, err := os.ReadFile(contentFile)
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(saved, &data))
	assert.Equal(t, "The Old Barn", data["venue"])
}
