package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spkcd/smart-bulk-password-reset/internal/services"
)

// TemplateHandler handles email template management requests.
type TemplateHandler struct {
	templateService services.ITemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService services.ITemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type createTemplateRequest struct {
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type updateTemplateRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// ListTemplates handles GET /v1/admin/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// GetTemplate handles GET /v1/admin/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tmpl, err := h.templateService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderTemplateError(c, err, "Failed to load template")
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// CreateTemplate handles POST /v1/admin/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, subject and body are required"})
		return
	}

	id, err := h.templateService.Create(c.Request.Context(), req.Name, req.Subject, req.Body)
	if err != nil {
		h.renderTemplateError(c, err, "Failed to save template")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Template saved."})
}

// UpdateTemplate handles PUT /v1/admin/templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject and body are required"})
		return
	}

	if err := h.templateService.Update(c.Request.Context(), c.Param("id"), req.Subject, req.Body); err != nil {
		h.renderTemplateError(c, err, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template updated."})
}

// DeleteTemplate handles DELETE /v1/admin/templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.renderTemplateError(c, err, "Failed to delete template")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted."})
}

// renderTemplateError maps service errors to HTTP responses.
func (h *TemplateHandler) renderTemplateError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
	case errors.Is(err, services.ErrReservedTemplateID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "The default template cannot be modified"})
	case errors.Is(err, services.ErrTemplateNameRequired),
		errors.Is(err, services.ErrTemplateFieldsEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
