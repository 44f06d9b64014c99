package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/spkcd/smart-bulk-password-reset/internal/models"
	"github.com/spkcd/smart-bulk-password-reset/internal/utils"
)

// fakeOptionStore is an in-memory IOptionService. Values are round-tripped
// through BSON so decoding behaves like the real store.
type fakeOptionStore struct {
	mu     sync.Mutex
	values map[string]bson.RawValue
}

func newFakeOptionStore() *fakeOptionStore {
	return &fakeOptionStore{values: make(map[string]bson.RawValue)}
}

func (f *fakeOptionStore) Get(ctx context.Context, name string, out interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.values[name]
	if !ok {
		return ErrOptionNotFound
	}
	return raw.Unmarshal(out)
}

func (f *fakeOptionStore) GetString(ctx context.Context, name, defaultValue string) string {
	var value string
	if err := f.Get(ctx, name, &value); err != nil {
		return defaultValue
	}
	return value
}

func (f *fakeOptionStore) Set(ctx context.Context, name string, value interface{}) error {
	bsonType, data, err := bson.MarshalValue(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = bson.RawValue{Type: bsonType, Value: data}
	return nil
}

func (f *fakeOptionStore) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, name)
	return nil
}

// MockUserService is a mock implementation of IUserService.
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

func (m *MockUserService) ListByRole(ctx context.Context, role string) ([]UserSummary, error) {
	args := m.Called(ctx, role)
	if users, ok := args.Get(0).([]UserSummary); ok {
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

// MockAuditService is a mock implementation of IAuditService.
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Append(entries []models.ResetLogEntry, asOf time.Time) error {
	args := m.Called(entries, asOf)
	return args.Error(0)
}

func (m *MockAuditService) LogFilePath(asOf time.Time) string {
	args := m.Called(asOf)
	return args.String(0)
}

// MockEmailSender is a mock implementation of email.Sender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	args := m.Called(ctx, to, subject, rawMessage)
	return args.Error(0)
}
