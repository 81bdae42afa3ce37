package handlers_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/ren89/property-listing-app/internal/models"
	"github.com/ren89/property-listing-app/internal/session"
)

// --- Mocks ---

// MockPropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) ListProperties(ctx context.Context) ([]models.PropertyListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyListing), args.Error(1)
}

func (m *MockPropertyService) GetPropertyByID(ctx context.Context, id string) (*models.PropertyListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyListing), args.Error(1)
}

func (m *MockPropertyService) CreateProperty(ctx context.Context, data models.CreatePropertyData) (*models.PropertyListing, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyListing), args.Error(1)
}

func (m *MockPropertyService) UpdateProperty(ctx context.Context, id string, data models.UpdatePropertyData) (*models.PropertyListing, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyListing), args.Error(1)
}

func (m *MockPropertyService) DeleteProperty(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) SignUp(ctx context.Context, email, password, name string) (*models.User, string, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockSessionStore) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockSessionStore) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionStore) Current(ctx context.Context, token string) (*models.User, string, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockSessionStore) Subscribe(fn session.Listener) int {
	args := m.Called(fn)
	return args.Int(0)
}

func (m *MockSessionStore) Unsubscribe(id int) {
	m.Called(id)
}

// MockBlobStorage
type MockBlobStorage struct {
	mock.Mock
}

func (m *MockBlobStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStorage) Delete(ctx context.Context, urls []string) error {
	args := m.Called(ctx, urls)
	return args.Error(0)
}
