package handler

import (
	"github.com/gin-gonic/gin"
	customerapp "github.com/storefront/backend/internal/application/customer"
)

// AddressHandler manages the signed-in user's saved address
type AddressHandler struct {
	BaseHandler
	addresses *customerapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addresses *customerapp.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// Get godoc
// @ID           getMyAddress
// @Summary      Get my address
// @Tags         addresses
// @Produce      json
// @Success      200 {object} APIResponse[customerapp.AddressResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /addresses/me [get]
func (h *AddressHandler) Get(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	addr, err := h.addresses.GetMine(c.Request.Context(), user.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, addr)
}

// Upsert godoc
// @ID           putMyAddress
// @Summary      Save my address
// @Description  Creates the address or replaces the existing one
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        request body customerapp.AddressRequest true "Address"
// @Success      200 {object} APIResponse[customerapp.AddressResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /addresses/me [put]
func (h *AddressHandler) Upsert(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req customerapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	addr, err := h.addresses.Upsert(c.Request.Context(), user.ID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, addr)
}

// Delete godoc
// @ID           deleteMyAddress
// @Summary      Delete my address
// @Tags         addresses
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /addresses/me [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if err := h.addresses.DeleteMine(c.Request.Context(), user.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
