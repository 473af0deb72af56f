// Package identity maps identity-provider subjects to local users.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdentityService resolves token claims to local users, provisioning them on first sight
type IdentityService struct {
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(userRepo identity.UserRepository, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the publisher used for UserProvisioned events
func (s *IdentityService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Resolve returns the user for the token subject, creating it if missing.
// The email and role claims are synced onto an existing user.
func (s *IdentityService) Resolve(ctx context.Context, in ResolveInput) (*CurrentUser, error) {
	user, err := s.userRepo.FindByExternalID(ctx, in.ExternalID)
	switch {
	case err == nil:
		return s.sync(ctx, user, in)
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	user, err = identity.NewUser(in.ExternalID, in.Email, identity.ParseRole(in.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Another request provisioned the same subject first
		if errors.Is(err, shared.ErrAlreadyExists) {
			existing, findErr := s.userRepo.FindByExternalID(ctx, in.ExternalID)
			if findErr != nil {
				return nil, findErr
			}
			return ToCurrentUser(existing), nil
		}
		return nil, err
	}

	s.logger.Info("Provisioned user",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	s.publish(ctx, user)
	return ToCurrentUser(user), nil
}

// GetByID returns a user by internal ID
func (s *IdentityService) GetByID(ctx context.Context, id uuid.UUID) (*CurrentUser, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCurrentUser(user), nil
}

func (s *IdentityService) sync(ctx context.Context, user *identity.User, in ResolveInput) (*CurrentUser, error) {
	emailChanged := user.SyncEmail(in.Email)
	roleChanged := user.SyncRole(in.Role)
	if emailChanged || roleChanged {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return ToCurrentUser(user), nil
}

func (s *IdentityService) publish(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		user.ClearDomainEvents()
		return
	}
	if err := s.eventPublisher.Publish(ctx, user.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish user events", zap.Error(err))
	}
	user.ClearDomainEvents()
}
