package handler

import (
	"github.com/gin-gonic/gin"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
)

// CheckoutHandler drives the shipping, payment and confirmation steps
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Begin godoc
// @ID           beginCheckout
// @Summary      Start checkout
// @Description  Opens a session at the shipping step, prefilled with the saved address. An empty cart yields 409 with a redirect to /cart.
// @Tags         checkout
// @Produce      json
// @Success      200 {object} APIResponse[checkoutapp.SessionResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout [post]
func (h *CheckoutHandler) Begin(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	resp, err := h.checkout.Begin(c.Request.Context(), user.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Status godoc
// @ID           getCheckout
// @Summary      Current checkout session
// @Tags         checkout
// @Produce      json
// @Success      200 {object} APIResponse[checkoutapp.SessionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout [get]
func (h *CheckoutHandler) Status(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	resp, err := h.checkout.Status(c.Request.Context(), user.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Shipping godoc
// @ID           submitCheckoutShipping
// @Summary      Submit shipping address
// @Description  Validates the address and advances to the payment step
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.ShippingRequest true "Shipping address"
// @Success      200 {object} APIResponse[checkoutapp.SessionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout/shipping [post]
func (h *CheckoutHandler) Shipping(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req checkoutapp.ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.checkout.SubmitShipping(c.Request.Context(), user.ID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Back godoc
// @ID           checkoutBack
// @Summary      Return to shipping
// @Description  Only allowed from the payment step
// @Tags         checkout
// @Produce      json
// @Success      200 {object} APIResponse[checkoutapp.SessionResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout/back [post]
func (h *CheckoutHandler) Back(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	resp, err := h.checkout.Back(c.Request.Context(), user.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Payment godoc
// @ID           submitCheckoutPayment
// @Summary      Pay and place the order
// @Description  Authorizes the payment, then saves the address, order and items in one transaction and empties the cart
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.PaymentRequest true "Payment details"
// @Success      201 {object} APIResponse[checkoutapp.ConfirmationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      402 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /checkout/payment [post]
func (h *CheckoutHandler) Payment(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req checkoutapp.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.checkout.SubmitPayment(c.Request.Context(), user.ID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}
