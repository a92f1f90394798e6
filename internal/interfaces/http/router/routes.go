package router

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Handlers are the endpoint handlers mounted by StorefrontRoutes
type Handlers struct {
	Auth     *handler.AuthHandler
	Seller   *handler.SellerHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Upload   *handler.UploadHandler
	Client   *handler.ClientHandler
	Order    *handler.OrderHandler
	Cart     *handler.CartHandler
	Relay    *handler.RelayHandler
	Outbox   *handler.OutboxHandler
	System   *handler.SystemHandler
}

// Guards are the request guards that depend on runtime services.
// Authenticate is required; LoginRateLimit may be nil.
type Guards struct {
	Authenticate   gin.HandlerFunc
	LoginRateLimit gin.HandlerFunc
}

// StorefrontRoutes lays out the API:
//
//	/auth          login and refresh are public, logout and me need a token
//	/shops/:id     public shop profile
//	/client/:sellerId/:phone  shopper storefront, no token
//	/admin         token required; catalog, orders, clients, uploads and
//	               relay also resolve the seller scope
//	/system        build information
func StorefrontRoutes(h Handlers, g Guards) []RouteRegistrar {
	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.Group("login", "").
		Use(g.LoginRateLimit).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh)
	authRoutes.Group("session", "").
		Use(g.Authenticate).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.Me)

	shopRoutes := NewDomainGroup("shops", "/shops/:"+middleware.SellerPathParam).
		Use(middleware.StorefrontSeller()).
		GET("", h.Seller.GetPublic)

	clientRoutes := NewDomainGroup("storefront", "/client/:"+middleware.SellerPathParam+"/:phone").
		Use(middleware.StorefrontSeller(), middleware.TracingAttributes()).
		GET("", h.Client.Landing).
		POST("/visit", h.Client.RecordVisit).
		GET("/products", h.Product.List).
		GET("/orders", h.Order.ClientHistory).
		POST("/orders", h.Order.PlaceOrder).
		GET("/cart", h.Cart.Get).
		DELETE("/cart", h.Cart.Clear).
		POST("/cart/items", h.Cart.AddItem).
		PUT("/cart/items/:productId", h.Cart.UpdateQuantity).
		DELETE("/cart/items/:productId", h.Cart.RemoveItem).
		POST("/cart/checkout", h.Cart.Checkout)

	adminRoutes := NewDomainGroup("admin", "/admin").Use(g.Authenticate)

	adminRoutes.Group("sellers", "/sellers").
		Use(middleware.TracingAttributes()).
		POST("", h.Seller.Provision).
		GET("", h.Seller.List).
		GET("/:id", h.Seller.Get).
		PUT("/:id", h.Seller.Update)

	adminRoutes.Group("outbox", "/outbox").
		Use(middleware.TracingAttributes()).
		GET("/dead", h.Outbox.GetDeadLetterEntries).
		GET("/stats", h.Outbox.GetStats).
		POST("/dead/retry-all", h.Outbox.RetryAllDeadEntries).
		POST("/:id/retry", h.Outbox.RetryDeadEntry)

	scoped := adminRoutes.Group("seller-scope", "").
		Use(middleware.SellerScope(), middleware.TracingAttributes())

	scoped.Group("categories", "/categories").
		GET("", h.Category.List).
		POST("", h.Category.Create).
		GET("/:id", h.Category.GetByID).
		PUT("/:id", h.Category.Update).
		DELETE("/:id", h.Category.Delete)

	scoped.Group("products", "/products").
		GET("", h.Product.List).
		POST("", h.Product.Create).
		GET("/:id", h.Product.GetByID).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", h.Product.Delete)

	scoped.Group("uploads", "/uploads").
		POST("/products", h.Upload.UploadProductImage).
		POST("/logo", h.Upload.UploadSellerLogo)

	scoped.Group("orders", "/orders").
		GET("", h.Order.List).
		GET("/:id", h.Order.GetByID).
		PUT("/:id/status", h.Order.UpdateStatus)

	scoped.Group("clients", "/clients").
		GET("", h.Client.List).
		GET("/:phone", h.Client.Get)

	scoped.
		GET("/stats", h.Order.Stats).
		POST("/notifications/relay", h.Relay.Send)

	systemRoutes := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	return []RouteRegistrar{authRoutes, shopRoutes, clientRoutes, adminRoutes, systemRoutes}
}
