package services

import (
	"strings"

	"github.com/spkcd/smart-bulk-password-reset/internal/config"
	"github.com/spkcd/smart-bulk-password-reset/internal/models"
)

// PlaceholderData carries the values substituted into an email subject or
// body. Substitution is a whitelist replace: only the fixed tokens below are
// recognised, everything else passes through verbatim, and no HTML escaping
// is applied (the body is sanitised upstream).
type PlaceholderData struct {
	UserName    string
	UserEmail   string
	Username    string
	NewPassword string
	LoginURL    string
	SiteTitle   string
}

// ReplacePlaceholders substitutes every occurrence of the recognised tokens
// in content. The replacement is a single pass: values containing tokens are
// not re-substituted.
func ReplacePlaceholders(content string, data PlaceholderData) string {
	replacer := strings.NewReplacer(
		"{user_name}", data.UserName,
		"{user_email}", data.UserEmail,
		"{username}", data.Username,
		"{new_password}", data.NewPassword,
		"{login_url}", data.LoginURL,
		"{site_title}", data.SiteTitle,
	)
	return replacer.Replace(content)
}

// LivePlaceholderData builds substitution values from a real user and a
// freshly generated password.
func LivePlaceholderData(user *models.User, newPassword string, cfg *config.Config) PlaceholderData {
	return PlaceholderData{
		UserName:    user.Name,
		UserEmail:   user.Email,
		Username:    user.Login,
		NewPassword: newPassword,
		LoginURL:    cfg.LoginURL,
		SiteTitle:   cfg.SiteTitle,
	}
}

// PreviewPlaceholderData builds the fixed dummy values used for both the
// in-page preview and test sends, so the two always agree.
func PreviewPlaceholderData(cfg *config.Config) PlaceholderData {
	return PlaceholderData{
		UserName:    "John Doe",
		UserEmail:   "john@example.com",
		Username:    "johndoe",
		NewPassword: "Test@1234",
		LoginURL:    cfg.LoginURL,
		SiteTitle:   cfg.SiteTitle,
	}
}
