package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	adminapp "github.com/storefront/backend/internal/application/admin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// AdminHandler serves the back-office: dashboard, product CRUD and order management
type AdminHandler struct {
	BaseHandler
	products  *adminapp.ProductService
	dashboard *adminapp.DashboardService
	orders    *orderapp.OrderService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(products *adminapp.ProductService, dashboard *adminapp.DashboardService, orders *orderapp.OrderService) *AdminHandler {
	return &AdminHandler{products: products, dashboard: dashboard, orders: orders}
}

// UpdateOrderStatusRequest sets an order's status
// @Description Any status may follow any other
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"shipped"`
}

// Dashboard godoc
// @ID           getAdminDashboard
// @Summary      Dashboard figures
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[adminapp.DashboardResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	resp, err := h.dashboard.Get(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListProducts godoc
// @ID           listAdminProducts
// @Summary      List products
// @Tags         admin
// @Produce      json
// @Param        search    query string false "Name search"
// @Param        category  query string false "Category"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Security     BearerAuth
// @Router       /admin/products [get]
func (h *AdminHandler) ListProducts(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// CreateProduct godoc
// @ID           createAdminProduct
// @Summary      Create product
// @Description  Price and stock must be non-negative, offer within 0..100
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body adminapp.ProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req adminapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, product)
}

// UpdateProduct godoc
// @ID           updateAdminProduct
// @Summary      Update product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Product ID" format(uuid)
// @Param        request body adminapp.ProductRequest true "Product"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req adminapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct godoc
// @ID           deleteAdminProduct
// @Summary      Delete product
// @Tags         admin
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ImageUpload godoc
// @ID           createProductImageUpload
// @Summary      Presign a product image upload
// @Description  Returns a time-limited PUT URL and the public URL to store on the product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "Product ID" format(uuid)
// @Param        request body adminapp.ImageUploadRequest true "Content type"
// @Success      200 {object} APIResponse[adminapp.UploadTarget]
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id}/image-upload [post]
func (h *AdminHandler) ImageUpload(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req adminapp.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	target, err := h.products.ImageUpload(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, adminapp.ErrImageStorageDisabled) {
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Image uploads are not configured")
			return
		}
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, target)
}

// ListOrders godoc
// @ID           listAdminOrders
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Param        status    query string false "Status" Enums(pending, processing, shipped, delivered, cancelled)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]orderapp.OrderListItem]
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	orders, total, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetOrder godoc
// @ID           getAdminOrder
// @Summary      Get any order
// @Tags         admin
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[orderapp.OrderDetail]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id} [get]
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, detail)
}

// UpdateOrderStatus godoc
// @ID           updateAdminOrderStatus
// @Summary      Set order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Order ID" format(uuid)
// @Param        request body UpdateOrderStatusRequest true "Status"
// @Success      200 {object} APIResponse[orderapp.OrderDetail]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	detail, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, detail)
}
