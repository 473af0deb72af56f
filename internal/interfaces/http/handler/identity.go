package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// IdentityHandler serves the signed-in user's profile
type IdentityHandler struct {
	BaseHandler
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewIdentityHandler creates a new IdentityHandler. blacklist may be nil, in
// which case sign-out only acknowledges the request.
func NewIdentityHandler(blacklist auth.TokenBlacklist, logger *zap.Logger) *IdentityHandler {
	return &IdentityHandler{blacklist: blacklist, logger: logger}
}

// Me godoc
// @ID           getMe
// @Summary      Current user
// @Description  Returns the internal user and role resolved from the bearer token
// @Tags         identity
// @Produce      json
// @Success      200 {object} APIResponse[identityapp.CurrentUser]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /me [get]
func (h *IdentityHandler) Me(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	h.Success(c, user)
}

// SignOut godoc
// @ID           signOut
// @Summary      Revoke the current token
// @Description  Blacklists the bearer token until it would have expired
// @Tags         identity
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /me/sign-out [post]
func (h *IdentityHandler) SignOut(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		h.Unauthorized(c, "Sign in to continue")
		return
	}
	if h.blacklist == nil || identity.TokenID == "" {
		h.NoContent(c)
		return
	}

	ttl := time.Until(identity.ExpiresAt)
	if ttl <= 0 {
		h.NoContent(c)
		return
	}
	if err := h.blacklist.Revoke(c.Request.Context(), identity.TokenID, ttl); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.logger.Info("Token revoked", zap.String("subject", identity.Subject))
	h.NoContent(c)
}
