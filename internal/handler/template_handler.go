package handler

import (
	"errors"
	"net/http"

	"oraculus/internal/template"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TemplateHandler exposes the story template catalog over HTTP.
type TemplateHandler struct {
	templates *template.Manager
	logger    *zap.Logger
}

func NewTemplateHandler(templates *template.Manager, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		logger:    logger.Named("handler"),
	}
}

func (h *TemplateHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.health)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/templates", h.listTemplates)
		apiGroup.GET("/templates/:template_id", h.getTemplate)
		apiGroup.POST("/templates/:template_id/generate", h.generateStory)
	}
}

func (h *TemplateHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *TemplateHandler) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.templates.List()})
}

func (h *TemplateHandler) getTemplate(c *gin.Context) {
	templateID := c.Param("template_id")
	details, err := h.templates.DetailsFor(templateID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, details)
}

// generateRequest is the body of POST /api/templates/:template_id/generate.
type generateRequest struct {
	Variables map[string]string `json:"variables"`
	Character map[string]string `json:"character"`
}

func (h *TemplateHandler) generateStory(c *gin.Context) {
	templateID := c.Param("template_id")

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.templates.Generate(templateID, req.Variables, req.Character)
	if err != nil {
		var verr *template.ValidationError
		switch {
		case errors.Is(err, template.ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "Validation failed",
				"details": verr.Details,
			})
		default:
			h.logger.Error("Template generation failed",
				zap.String("template_id", templateID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"story":               result.Story,
		"cache_key":           result.CacheKey,
		"character_variables": result.CharacterVariables,
	})
}
