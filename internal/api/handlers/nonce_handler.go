package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spkcd/smart-bulk-password-reset/internal/api/middleware"
)

// Nonce-protected actions. The token handed out for one action is not
// accepted by any other.
const (
	ActionSaveTemplate   = "save_template"
	ActionUpdateTemplate = "update_template"
	ActionDeleteTemplate = "delete_template"
	ActionSendTestEmail  = "send_test_email"
	ActionSendReset      = "send_reset"
)

var allowedNonceActions = map[string]bool{
	ActionSaveTemplate:   true,
	ActionUpdateTemplate: true,
	ActionDeleteTemplate: true,
	ActionSendTestEmail:  true,
	ActionSendReset:      true,
}

// NonceHandler hands out one-time tokens for the mutating admin endpoints.
type NonceHandler struct {
	store *middleware.NonceStore
}

// NewNonceHandler creates a new NonceHandler.
func NewNonceHandler(store *middleware.NonceStore) *NonceHandler {
	return &NonceHandler{store: store}
}

// GetNonce handles GET /v1/admin/nonce/:action
func (h *NonceHandler) GetNonce(c *gin.Context) {
	action := c.Param("action")
	if !allowedNonceActions[action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
		return
	}

	token, err := h.store.Issue(c.Request.Context(), action)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue nonce"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nonce": token})
}
