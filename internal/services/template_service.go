package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spkcd/smart-bulk-password-reset/internal/config"
	"github.com/spkcd/smart-bulk-password-reset/internal/models"
	"github.com/spkcd/smart-bulk-password-reset/internal/utils"
)

// Errors surfaced by template operations.
var (
	ErrTemplateNotFound     = errors.New("template not found")
	ErrReservedTemplateID   = errors.New("template id is reserved")
	ErrTemplateNameRequired = errors.New("template name is required")
	ErrTemplateFieldsEmpty  = errors.New("template subject and body cannot be empty")
)

// Option names used by the template store.
const (
	optionEmailTemplates = "email_templates"
	optionDefaultSubject = "default_subject"
	optionDefaultBody    = "default_email_body"
)

// DefaultSubjectTemplate is the built-in subject used when no override option is set.
const DefaultSubjectTemplate = "Your New Password for {site_title}"

// ITemplateService defines the interface for email template operations.
// All saved templates live inside one option value, in insertion order;
// every mutation rewrites the whole list.
type ITemplateService interface {
	List(ctx context.Context) ([]models.EmailTemplate, error)
	Get(ctx context.Context, id string) (*models.EmailTemplate, error)
	Create(ctx context.Context, name, subject, body string) (string, error)
	Update(ctx context.Context, id, subject, body string) error
	Delete(ctx context.Context, id string) error
}

// templateService implements ITemplateService.
type templateService struct {
	options IOptionService
	cfg     *config.Config
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(options IOptionService, cfg *config.Config) ITemplateService {
	return &templateService{options: options, cfg: cfg}
}

// List returns all saved templates in insertion order. The reserved default
// template is computed, not stored, and is not part of the list.
func (s *templateService) List(ctx context.Context) ([]models.EmailTemplate, error) {
	var templates []models.EmailTemplate
	err := s.options.Get(ctx, optionEmailTemplates, &templates)
	if err != nil {
		if errors.Is(err, ErrOptionNotFound) {
			return []models.EmailTemplate{}, nil
		}
		return nil, fmt.Errorf("error loading templates: %w", err)
	}
	if templates == nil {
		templates = []models.EmailTemplate{}
	}
	return templates, nil
}

// Get retrieves a template by id. The reserved id "default" resolves to the
// computed default subject/body rather than a stored template.
func (s *templateService) Get(ctx context.Context, id string) (*models.EmailTemplate, error) {
	if id == models.DefaultTemplateID {
		tmpl := s.defaultTemplate(ctx)
		return &tmpl, nil
	}

	templates, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, ErrTemplateNotFound
}

// Create validates, generates a fresh id and appends the template.
// Returns the new id.
func (s *templateService) Create(ctx context.Context, name, subject, body string) (string, error) {
	name = strings.TrimSpace(name)
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if name == "" {
		return "", ErrTemplateNameRequired
	}
	if subject == "" || body == "" {
		return "", ErrTemplateFieldsEmpty
	}

	templates, err := s.List(ctx)
	if err != nil {
		return "", err
	}

	existing := make(map[string]bool, len(templates))
	for _, t := range templates {
		existing[t.ID] = true
	}

	// Random 6-byte ids collide essentially never, but the contract is a
	// fresh id not present in the mapping, so check anyway.
	id := utils.NewSixID().String()
	for existing[id] || id == models.DefaultTemplateID {
		id = utils.NewSixID().String()
	}

	templates = append(templates, models.EmailTemplate{
		ID:      id,
		Name:    name,
		Subject: subject,
		Body:    body,
	})

	if err := s.options.Set(ctx, optionEmailTemplates, templates); err != nil {
		return "", fmt.Errorf("error saving templates: %w", err)
	}
	return id, nil
}

// Update replaces subject and body of an existing template. The name is
// immutable after creation.
func (s *templateService) Update(ctx context.Context, id, subject, body string) error {
	if id == models.DefaultTemplateID {
		return ErrReservedTemplateID
	}
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return ErrTemplateFieldsEmpty
	}

	templates, err := s.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range templates {
		if templates[i].ID == id {
			templates[i].Subject = subject
			templates[i].Body = body
			found = true
			break
		}
	}
	if !found {
		return ErrTemplateNotFound
	}

	if err := s.options.Set(ctx, optionEmailTemplates, templates); err != nil {
		return fmt.Errorf("error saving templates: %w", err)
	}
	return nil
}

// Delete removes a template by id.
func (s *templateService) Delete(ctx context.Context, id string) error {
	if id == models.DefaultTemplateID {
		return ErrReservedTemplateID
	}

	templates, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := templates[:0]
	found := false
	for _, t := range templates {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrTemplateNotFound
	}

	if err := s.options.Set(ctx, optionEmailTemplates, kept); err != nil {
		return fmt.Errorf("error saving templates: %w", err)
	}
	return nil
}

// defaultTemplate computes the default subject/body pair, honouring the
// override options when set. Site title and login URL are interpolated once
// here; the remaining placeholders are resolved per recipient.
func (s *templateService) defaultTemplate(ctx context.Context) models.EmailTemplate {
	subject := s.options.GetString(ctx, optionDefaultSubject, DefaultSubjectTemplate)

	defaultBody := fmt.Sprintf(
		"<p>Hi {user_name},</p>\n<p>Your password for %s has been reset.</p>\n"+
			"<p>Your new password is: <strong>{new_password}</strong></p>\n"+
			"<p>You can log in here: %s</p>\n"+
			"<p>We recommend changing this password after logging in.</p>",
		s.cfg.SiteTitle, s.cfg.LoginURL)
	body := s.options.GetString(ctx, optionDefaultBody, defaultBody)

	return models.EmailTemplate{
		ID:      models.DefaultTemplateID,
		Name:    "Default Template",
		Subject: subject,
		Body:    body,
	}
}
