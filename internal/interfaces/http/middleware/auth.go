package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	CurrentUserKey = "current_user"
	IdentityKey    = "token_identity"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// TokenVerifier validates a bearer token
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Identity, error)
}

// UserResolver maps verified claims to the internal user
type UserResolver interface {
	Resolve(ctx context.Context, in identityapp.ResolveInput) (*identityapp.CurrentUser, error)
}

// AuthConfig holds the collaborators of the authentication middleware
type AuthConfig struct {
	Verifier TokenVerifier
	// Blacklist is optional; when set, revoked token ids are rejected
	Blacklist auth.TokenBlacklist
	Resolver  UserResolver
	Logger    *zap.Logger
}

// Authenticate requires a valid bearer token, resolves it to the internal user
// and stores both in the gin context. Failures answer 401 with a sign-in redirect.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			unauthorized(c, dto.ErrCodeUnauthorized, "Sign in to continue")
			return
		}

		identity, err := cfg.Verifier.Verify(tokenString)
		if err != nil {
			log.Debug("Token verification failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			if errors.Is(err, auth.ErrExpiredToken) {
				unauthorized(c, dto.ErrCodeTokenExpired, "Session has expired, sign in again")
				return
			}
			unauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		ctx := c.Request.Context()
		if cfg.Blacklist != nil && identity.TokenID != "" {
			revoked, err := cfg.Blacklist.IsRevoked(ctx, identity.TokenID)
			if err != nil {
				// Fail open: the blacklist is an optimisation over token expiry
				log.Error("Failed to check token blacklist", zap.String("jti", identity.TokenID), zap.Error(err))
			} else if revoked {
				unauthorized(c, dto.ErrCodeTokenInvalid, "Token has been revoked")
				return
			}
		}

		user, err := cfg.Resolver.Resolve(ctx, identityapp.ResolveInput{
			ExternalID: identity.Subject,
			Email:      identity.Email,
			Role:       identity.Role,
		})
		if err != nil {
			log.Error("Failed to resolve user", zap.String("subject", identity.Subject), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
			return
		}

		c.Set(IdentityKey, identity)
		c.Set(CurrentUserKey, user)

		reqLog := logger.FromContext(ctx)
		ctx, _ = logger.WithUserID(ctx, reqLog, user.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin rejects authenticated non-admin users with 403.
// It must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil {
			unauthorized(c, dto.ErrCodeUnauthorized, "Sign in to continue")
			return
		}
		if !user.IsAdmin() {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Administrator access required")
			return
		}
		c.Next()
	}
}

// GetCurrentUser returns the user stored by Authenticate, or nil
func GetCurrentUser(c *gin.Context) *identityapp.CurrentUser {
	if v, ok := c.Get(CurrentUserKey); ok {
		if user, ok := v.(*identityapp.CurrentUser); ok {
			return user
		}
	}
	return nil
}

// GetIdentity returns the verified token identity stored by Authenticate, or nil
func GetIdentity(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func unauthorized(c *gin.Context, code, message string) {
	abortWithError(c, http.StatusUnauthorized, code, message)
}
