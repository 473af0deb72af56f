package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
)

// CartHandler serves the signed-in user's cart
type CartHandler struct {
	BaseHandler
	carts *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cartapp.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get godoc
// @ID           getCart
// @Summary      Get cart
// @Description  Lines, subtotal and item count. An empty cart has empty=true.
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	resp, err := h.carts.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem godoc
// @ID           addCartItem
// @Summary      Add to cart
// @Description  Appends a product or increments its quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.AddItemRequest true "Item"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.carts.Add(c.Request.Context(), user.ID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem godoc
// @ID           updateCartItem
// @Summary      Set item quantity
// @Description  Quantities below 1 are clamped to 1
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId path string                        true "Product ID" format(uuid)
// @Param        request   body cartapp.UpdateQuantityRequest true "Quantity"
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "productId")
	if !ok {
		return
	}
	var req cartapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.carts.UpdateQuantity(c.Request.Context(), user.ID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem godoc
// @ID           removeCartItem
// @Summary      Remove from cart
// @Tags         cart
// @Produce      json
// @Param        productId path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[cartapp.CartResponse]
// @Security     BearerAuth
// @Router       /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "productId")
	if !ok {
		return
	}
	resp, err := h.carts.Remove(c.Request.Context(), user.ID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear godoc
// @ID           clearCart
// @Summary      Empty the cart
// @Tags         cart
// @Success      204
// @Security     BearerAuth
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if err := h.carts.Clear(c.Request.Context(), user.ID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
