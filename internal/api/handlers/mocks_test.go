package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spkcd/smart-bulk-password-reset/internal/models"
	"github.com/spkcd/smart-bulk-password-reset/internal/services"
	"github.com/spkcd/smart-bulk-password-reset/internal/utils"
)

// --- Mock UserService ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindByID(ctx context.Context, id utils.SixID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) ListByRole(ctx context.Context, role string) ([]services.UserSummary, error) {
	args := m.Called(ctx, role)
	if users, ok := args.Get(0).([]services.UserSummary); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) ListRoles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if roles, ok := args.Get(0).([]string); ok {
		return roles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) SetPassword(ctx context.Context, id utils.SixID, newPassword string) error {
	args := m.Called(ctx, id, newPassword)
	return args.Error(0)
}

// --- Mock TemplateService ---

type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) List(ctx context.Context) ([]models.EmailTemplate, error) {
	args := m.Called(ctx)
	if templates, ok := args.Get(0).([]models.EmailTemplate); ok {
		return templates, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemplateService) Get(ctx context.Context, id string) (*models.EmailTemplate, error) {
	args := m.Called(ctx, id)
	if tmpl, ok := args.Get(0).(*models.EmailTemplate); ok {
		return tmpl, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemplateService) Create(ctx context.Context, name, subject, body string) (string, error) {
	args := m.Called(ctx, name, subject, body)
	return args.String(0), args.Error(1)
}

func (m *MockTemplateService) Update(ctx context.Context, id, subject, body string) error {
	args := m.Called(ctx, id, subject, body)
	return args.Error(0)
}

func (m *MockTemplateService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock ResetService ---

type MockResetService struct {
	mock.Mock
}

func (m *MockResetService) SendResetEmails(ctx context.Context, userIDs []utils.SixID, subject, body string) (*services.ResetSummary, error) {
	args := m.Called(ctx, userIDs, subject, body)
	if summary, ok := args.Get(0).(*services.ResetSummary); ok {
		return summary, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResetService) SendTestEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
