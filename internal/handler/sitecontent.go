package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SiteContentHandler reads and overwrites the site content document (venue,
// schedule, FAQ, contact info) consumed by the public pages. Editing is a
// development-only affordance for the admin area.
type SiteContentHandler struct {
	contentFile string
	devMode     bool
	log         zerolog.Logger
}

func NewSiteContentHandler(contentFile string, devMode bool, log zerolog.Logger) *SiteContentHandler {
	return &SiteContentHandler{
		contentFile: contentFile,
		devMode:     devMode,
		log:         log,
	}
}

// Get handles GET /api/site-config.
func (h *SiteContentHandler) Get(c *gin.Context) {
	if !h.devMode {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	content, err := os.ReadFile(h.contentFile)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read site content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read site configuration"})
		return
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		h.log.Error().Err(err).Msg("failed to parse site content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read site configuration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Update handles POST /api/site-config. The posted fields are shallow-merged
// over the existing document; keys not present in the body are preserved.
func (h *SiteContentHandler) Update(c *gin.Context) {
	if !h.devMode {
		c.JSON(http.StatusForbidden, gin.H{"error": "Site configuration can only be edited in development mode"})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save site configuration"})
		return
	}

	current, err := os.ReadFile(h.contentFile)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read site content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save site configuration"})
		return
	}

	var data map[string]any
	if err := json.Unmarshal(current, &data); err != nil {
		h.log.Error().Err(err).Msg("failed to parse site content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save site configuration"})
		return
	}

	for k, v := range body {
		data[k] = v
	}

	updated, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save site configuration"})
		return
	}

	if err := os.MkdirAll(filepath.Dir(h.contentFile), 0755); err != nil {
		h.log.Error().Err(err).Msg("failed to create content directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save site configuration"})
		return
	}
	if err := os.WriteFile(h.contentFile, updated, 0644); err != nil {
		h.log.Error().Err(err).Msg("failed to write site content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save site configuration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Site configuration saved successfully",
		"data":    data,
	})
}
