package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spkcd/smart-bulk-password-reset/internal/auth"
	"github.com/spkcd/smart-bulk-password-reset/internal/config"
	"github.com/spkcd/smart-bulk-password-reset/internal/email"
	"github.com/spkcd/smart-bulk-password-reset/internal/models"
	"github.com/spkcd/smart-bulk-password-reset/internal/utils"
)

// Errors surfaced by reset operations.
var (
	ErrNoUsersSelected    = errors.New("no users selected")
	ErrEmptySubjectOrBody = errors.New("email subject and body cannot be empty")
)

// ResetSummary reports the outcome of one bulk reset run.
type ResetSummary struct {
	SentCount  int
	LogEntries []models.ResetLogEntry
	LogWarning string // set when sends succeeded but the audit log could not be written
}

// IResetService defines the interface for the bulk reset workflow.
type IResetService interface {
	SendResetEmails(ctx context.Context, userIDs []utils.SixID, subject, body string) (*ResetSummary, error)
	SendTestEmail(ctx context.Context, to, subject, body string) error
}

// resetService implements IResetService.
type resetService struct {
	users  IUserService
	audit  IAuditService
	sender email.Sender
	cfg    *config.Config
}

// NewResetService creates a new ResetService.
func NewResetService(users IUserService, audit IAuditService, sender email.Sender, cfg *config.Config) IResetService {
	return &resetService{
		users:  users,
		audit:  audit,
		sender: sender,
		cfg:    cfg,
	}
}

// SendResetEmails runs the bulk workflow over the selected users: for each
// one it generates a fresh password, renders the template, and only commits
// the new password after the notification email was accepted for delivery.
// A user whose email cannot be sent keeps their old password. Per-user
// failures never abort the run.
func (s *resetService) SendResetEmails(ctx context.Context, userIDs []utils.SixID, subject, body string) (*ResetSummary, error) {
	if len(userIDs) == 0 {
		return nil, ErrNoUsersSelected
	}
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return nil, ErrEmptySubjectOrBody
	}

	// One timestamp for the whole run so its log rows group together.
	now := time.Now()
	timestamp := now.Format(timestampFmt)

	summary := &ResetSummary{LogEntries: []models.ResetLogEntry{}}

	for _, id := range userIDs {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				// Stale selection, e.g. the user was deleted mid-session.
				continue
			}
			log.Printf("Password reset: error loading user %s: %v", id, err)
			continue
		}

		newPassword, err := auth.GeneratePassword(s.cfg.PasswordLength)
		if err != nil {
			log.Printf("Password reset: failed to generate password for %s: %v", user.Login, err)
			continue
		}

		data := LivePlaceholderData(user, newPassword, s.cfg)
		renderedSubject := ReplacePlaceholders(subject, data)
		renderedBody := ReplacePlaceholders(body, data)

		message := email.BuildHTMLMessage(s.cfg.SmtpFromAddress, user.Email, renderedSubject, renderedBody)
		if err := s.sender.Send(ctx, []string{user.Email}, renderedSubject, message); err != nil {
			log.Printf("Password reset: failed to send email to %s: %v", user.Email, err)
			continue
		}

		if err := s.users.SetPassword(ctx, user.ID, newPassword); err != nil {
			// The email went out but the old password still stands. The
			// user lands on the lost-password flow, which is recoverable.
			log.Printf("Password reset: email sent to %s but password update failed: %v", user.Email, err)
			continue
		}

		summary.SentCount++
		summary.LogEntries = append(summary.LogEntries, models.ResetLogEntry{
			Timestamp: timestamp,
			Username:  user.Login,
			Email:     user.Email,
			Password:  newPassword,
		})
	}

	if len(summary.LogEntries) > 0 {
		if err := s.audit.Append(summary.LogEntries, now); err != nil {
			log.Printf("Password reset: could not write audit log: %v", err)
			summary.LogWarning = fmt.Sprintf("Could not write to the log file: %v", err)
		}
	}

	return summary, nil
}

// SendTestEmail renders the subject and body with the fixed preview values
// and sends the result to a single address. No account is touched.
func (s *resetService) SendTestEmail(ctx context.Context, to, subject, body string) error {
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return ErrEmptySubjectOrBody
	}

	data := PreviewPlaceholderData(s.cfg)
	renderedSubject := ReplacePlaceholders(subject, data)
	renderedBody := ReplacePlaceholders(body, data)

	message := email.BuildHTMLMessage(s.cfg.SmtpFromAddress, to, renderedSubject, renderedBody)
	if err := s.sender.Send(ctx, []string{to}, renderedSubject, message); err != nil {
		return fmt.Errorf("failed to send test email to %s: %w", to, err)
	}
	return nil
}
