package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CatalogHandler serves products, categories and reviews
type CatalogHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	comments *catalogapp.CommentService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products *catalogapp.ProductService, comments *catalogapp.CommentService) *CatalogHandler {
	return &CatalogHandler{products: products, comments: comments}
}

// ListProducts godoc
// @ID           listCatalogProducts
// @Summary      List products
// @Description  Lists products with optional category filter, name search, stock filter, pagination and sorting
// @Tags         catalog
// @Produce      json
// @Param        search    query string false "Case-insensitive name search"
// @Param        category  query string false "Category"
// @Param        in_stock  query bool   false "Only products with stock"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field" Enums(created_at, name, price, stock)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
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

// GetProduct godoc
// @ID           getCatalogProduct
// @Summary      Get product
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// Categories godoc
// @ID           listCatalogCategories
// @Summary      List categories
// @Description  Categories that currently have products, plus the fixed list of known categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[catalogapp.CategoriesResponse]
// @Router       /catalog/categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListComments godoc
// @ID           listProductComments
// @Summary      List product reviews
// @Description  Reviews newest first, with the average rating
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.CommentListResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id}/comments [get]
func (h *CatalogHandler) ListComments(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.comments.ListByProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, comments)
}

// CreateComment godoc
// @ID           createProductComment
// @Summary      Review a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Product ID" format(uuid)
// @Param        request body catalogapp.CreateCommentRequest true "Review"
// @Success      201 {object} APIResponse[catalogapp.CommentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id}/comments [post]
func (h *CatalogHandler) CreateComment(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), user.ID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, comment)
}
