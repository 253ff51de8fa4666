package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arora427/HomeVerse/internal/models"
	"github.com/arora427/HomeVerse/internal/services"
)

// --- Mocks ---

// MockUserService implements services.IUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, params services.RegisterParams) (*models.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockPropertyService implements services.IPropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) Create(ctx context.Context, ownerID primitive.ObjectID, params services.CreatePropertyParams) (*models.PropertyWithOwner, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyWithOwner), args.Error(1)
}

func (m *MockPropertyService) FindByID(ctx context.Context, propertyID primitive.ObjectID) (*models.PropertyWithOwner, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyWithOwner), args.Error(1)
}

func (m *MockPropertyService) Update(ctx context.Context, propertyID, callerID primitive.ObjectID, patch services.PropertyPatch, newImages []string) (*models.PropertyWithOwner, error) {
	args := m.Called(ctx, propertyID, callerID, patch, newImages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyWithOwner), args.Error(1)
}

func (m *MockPropertyService) Delete(ctx context.Context, propertyID, callerID primitive.ObjectID) error {
	args := m.Called(ctx, propertyID, callerID)
	return args.Error(0)
}

func (m *MockPropertyService) List(ctx context.Context, filters services.PropertyFilters) (*services.PropertyPage, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PropertyPage), args.Error(1)
}

// MockContactService implements services.IContactService
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Create(ctx context.Context, params services.CreateContactParams) (*models.Contact, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactService) List(ctx context.Context, propertyID *primitive.ObjectID) ([]models.ContactWithProperty, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContactWithProperty), args.Error(1)
}
