package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"

	"github.com/spkcd/smart-bulk-password-reset/internal/config"
	"github.com/spkcd/smart-bulk-password-reset/internal/services"
	"github.com/spkcd/smart-bulk-password-reset/internal/utils"
)

// ResetHandler handles user selection, previews and the bulk reset run.
type ResetHandler struct {
	userService  services.IUserService
	resetService services.IResetService
	cfg          *config.Config
}

// NewResetHandler creates a new ResetHandler.
func NewResetHandler(userService services.IUserService, resetService services.IResetService, cfg *config.Config) *ResetHandler {
	return &ResetHandler{
		userService:  userService,
		resetService: resetService,
		cfg:          cfg,
	}
}

type previewRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type testEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type sendResetRequest struct {
	UserIDs []string `json:"user_ids" binding:"required"`
	Subject string   `json:"subject" binding:"required"`
	Body    string   `json:"body" binding:"required"`
}

// GetUsersByRole handles GET /v1/admin/users?role=...
func (h *ResetHandler) GetUsersByRole(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role is required"})
		return
	}

	users, err := h.userService.ListByRole(c.Request.Context(), role)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	if len(users) == 0 {
		c.JSON(http.StatusOK, gin.H{"users": users, "message": "No users found for this role."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetRoles handles GET /v1/admin/roles
func (h *ResetHandler) GetRoles(c *gin.Context) {
	roles, err := h.userService.ListRoles(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load roles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// Preview handles POST /v1/admin/preview. It renders the subject and body
// with the fixed dummy values and returns the result without sending
// anything.
func (h *ResetHandler) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject and body are required"})
		return
	}

	data := services.PreviewPlaceholderData(h.cfg)
	c.JSON(http.StatusOK, gin.H{
		"subject": services.ReplacePlaceholders(req.Subject, data),
		"body":    services.ReplacePlaceholders(req.Body, data),
	})
}

// SendTestEmail handles POST /v1/admin/test-email
func (h *ResetHandler) SendTestEmail(c *gin.Context) {
	var req testEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient, subject and body are required"})
		return
	}

	if _, err := mail.ParseAddress(req.To); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	if err := h.resetService.SendTestEmail(c.Request.Context(), req.To, req.Subject, req.Body); err != nil {
		if errors.Is(err, services.ErrEmptySubjectOrBody) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send test email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Test email sent successfully to %s", req.To)})
}

// SendResetEmails handles POST /v1/admin/reset
func (h *ResetHandler) SendResetEmails(c *gin.Context) {
	var req sendResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User IDs, subject and body are required"})
		return
	}

	userIDs := make([]utils.SixID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := utils.ParseSixID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid user ID: %s", raw)})
			return
		}
		userIDs = append(userIDs, id)
	}

	summary, err := h.resetService.SendResetEmails(c.Request.Context(), userIDs, req.Subject, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUsersSelected),
			errors.Is(err, services.ErrEmptySubjectOrBody):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset emails"})
		}
		return
	}

	message := fmt.Sprintf("Successfully sent %d password reset emails.", summary.SentCount)
	if len(summary.LogEntries) > 0 && summary.LogWarning == "" {
		message += " Log file updated."
	}

	response := gin.H{
		"sent_count": summary.SentCount,
		"message":    message,
	}
	if summary.LogWarning != "" {
		response["log_warning"] = summary.LogWarning
	}
	c.JSON(http.StatusOK, response)
}
