package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*identity.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

func TestIdentityService_Resolve_ProvisionsNewUser(t *testing.T) {
	repo := new(MockUserRepository)
	publisher := new(MockEventPublisher)
	service := NewIdentityService(repo, nil)
	service.SetEventPublisher(publisher)
	ctx := context.Background()

	repo.On("FindByExternalID", ctx, "user_1").Return(nil, shared.ErrNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == identity.EventTypeUserProvisioned
	})).Return(nil)

	user, err := service.Resolve(ctx, ResolveInput{ExternalID: "user_1", Email: "A@Example.com", Role: "admin"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "a@example.com", user.Email)
	assert.True(t, user.IsAdmin())
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestIdentityService_Resolve_DefaultsToUserRole(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewIdentityService(repo, nil)
	ctx := context.Background()

	repo.On("FindByExternalID", ctx, "user_1").Return(nil, shared.ErrNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	user, err := service.Resolve(ctx, ResolveInput{ExternalID: "user_1"})

	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, user.Role)
}

func TestIdentityService_Resolve_ExistingUserUnchanged(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewIdentityService(repo, nil)
	ctx := context.Background()

	existing, _ := identity.NewUser("user_1", "a@example.com", identity.RoleUser)
	repo.On("FindByExternalID", ctx, "user_1").Return(existing, nil)

	user, err := service.Resolve(ctx, ResolveInput{ExternalID: "user_1", Email: "a@example.com"})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestIdentityService_Resolve_SyncsClaims(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewIdentityService(repo, nil)
	ctx := context.Background()

	existing, _ := identity.NewUser("user_1", "old@example.com", identity.RoleUser)
	repo.On("FindByExternalID", ctx, "user_1").Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	user, err := service.Resolve(ctx, ResolveInput{ExternalID: "user_1", Email: "new@example.com", Role: "admin"})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.True(t, user.IsAdmin())
	repo.AssertExpectations(t)
}

func TestIdentityService_Resolve_ConcurrentProvisioning(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewIdentityService(repo, nil)
	ctx := context.Background()

	winner, _ := identity.NewUser("user_1", "a@example.com", identity.RoleUser)
	repo.On("FindByExternalID", ctx, "user_1").Return(nil, shared.ErrNotFound).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(shared.ErrAlreadyExists)
	repo.On("FindByExternalID", ctx, "user_1").Return(winner, nil).Once()

	user, err := service.Resolve(ctx, ResolveInput{ExternalID: "user_1"})

	require.NoError(t, err)
	assert.Equal(t, winner.ID, user.ID)
}

func TestIdentityService_Resolve_RepositoryError(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewIdentityService(repo, nil)
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	repo.On("FindByExternalID", ctx, "user_1").Return(nil, dbErr)

	_, err := service.Resolve(ctx, ResolveInput{ExternalID: "user_1"})

	assert.ErrorIs(t, err, dbErr)
}

func TestIdentityService_GetByID(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewIdentityService(repo, nil)
	ctx := context.Background()

	existing, _ := identity.NewUser("user_1", "a@example.com", identity.RoleAdmin)
	repo.On("FindByID", ctx, existing.ID).Return(existing, nil)

	user, err := service.GetByID(ctx, existing.ID)

	require.NoError(t, err)
	assert.Equal(t, "user_1", user.ExternalID)
}
