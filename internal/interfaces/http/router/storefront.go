package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers of the storefront API
type Handlers struct {
	Health   *handler.HealthHandler
	Catalog  *handler.CatalogHandler
	Identity *handler.IdentityHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Address  *handler.AddressHandler
	Admin    *handler.AdminHandler
}

// RegisterStorefront mounts /health and the /api/v1 routes on engine.
// authenticate guards every route outside the public catalog; admin routes
// additionally require the admin role.
func RegisterStorefront(engine *gin.Engine, h Handlers, authenticate gin.HandlerFunc) {
	engine.GET("/health", h.Health.Health)
	engine.NoRoute(middleware.NoRoute())

	r := NewRouter(engine, WithAPIVersion("v1"))

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.GET("/products", h.Catalog.ListProducts)
	catalog.GET("/products/:id", h.Catalog.GetProduct)
	catalog.GET("/categories", h.Catalog.Categories)
	catalog.GET("/products/:id/comments", h.Catalog.ListComments)
	catalog.POST("/products/:id/comments", authenticate, h.Catalog.CreateComment)
	r.Register(catalog)

	me := NewDomainGroup("identity", "/me").Use(authenticate)
	me.GET("", h.Identity.Me)
	me.POST("/sign-out", h.Identity.SignOut)
	r.Register(me)

	cart := NewDomainGroup("cart", "/cart").Use(authenticate)
	cart.GET("", h.Cart.Get)
	cart.DELETE("", h.Cart.Clear)
	cart.POST("/items", h.Cart.AddItem)
	cart.PUT("/items/:productId", h.Cart.UpdateItem)
	cart.DELETE("/items/:productId", h.Cart.RemoveItem)
	r.Register(cart)

	checkout := NewDomainGroup("checkout", "/checkout").Use(authenticate)
	checkout.POST("", h.Checkout.Begin)
	checkout.GET("", h.Checkout.Status)
	checkout.POST("/shipping", h.Checkout.Shipping)
	checkout.POST("/back", h.Checkout.Back)
	checkout.POST("/payment", h.Checkout.Payment)
	r.Register(checkout)

	orders := NewDomainGroup("orders", "/orders").Use(authenticate)
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.Get)
	r.Register(orders)

	addresses := NewDomainGroup("addresses", "/addresses").Use(authenticate)
	addresses.GET("/me", h.Address.Get)
	addresses.PUT("/me", h.Address.Upsert)
	addresses.DELETE("/me", h.Address.Delete)
	r.Register(addresses)

	admin := NewDomainGroup("admin", "/admin").Use(authenticate, middleware.RequireAdmin())
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.GET("/products", h.Admin.ListProducts)
	admin.POST("/products", h.Admin.CreateProduct)
	admin.PUT("/products/:id", h.Admin.UpdateProduct)
	admin.DELETE("/products/:id", h.Admin.DeleteProduct)
	admin.POST("/products/:id/image-upload", h.Admin.ImageUpload)
	admin.GET("/orders", h.Admin.ListOrders)
	admin.GET("/orders/:id", h.Admin.GetOrder)
	admin.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)
	r.Register(admin)

	r.Setup()
}
