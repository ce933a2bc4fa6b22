package routes

import (
	"sparkle/auth"
	"sparkle/cart"
	"sparkle/categories"
	"sparkle/collections"
	"sparkle/content"
	"sparkle/metrics"
	"sparkle/middleware"
	"sparkle/orders"
	"sparkle/products"
	"sparkle/profile"
	"sparkle/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(metrics.Instrument("/api/auth/register", auth.Register)))
	router.POST("/api/auth/login", rateLimiter.Limit(metrics.Instrument("/api/auth/login", auth.Login)))
	router.POST("/api/auth/forgot-password", rateLimiter.Limit(metrics.Instrument("/api/auth/forgot-password", auth.ForgotPassword)))
	router.POST("/api/auth/reset-password/:token", rateLimiter.Limit(metrics.Instrument("/api/auth/reset-password/:token", auth.ResetPassword)))
}

func AddProductRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/products", metrics.Instrument("/api/products", products.GetProducts))
	router.GET("/api/products/:productid", metrics.Instrument("/api/products/:productid", products.GetProduct))

	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireAdmin)
	router.POST("/api/products", admin(products.CreateProduct))
	router.PUT("/api/products/:productid", admin(products.UpdateProduct))
	router.DELETE("/api/products/:productid", admin(products.DeleteProduct))
}

func AddCategoryRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/categories", metrics.Instrument("/api/categories", categories.GetCategories))
	router.GET("/api/categories/:categoryid", metrics.Instrument("/api/categories/:categoryid", categories.GetCategory))
	router.GET("/api/categories/:categoryid/products", metrics.Instrument("/api/categories/:categoryid/products", products.GetProductsByCategory))

	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireAdmin)
	router.POST("/api/categories", admin(categories.CreateCategory))
	router.PUT("/api/categories/:categoryid", admin(categories.UpdateCategory))
	router.DELETE("/api/categories/:categoryid", admin(categories.DeleteCategory))
}

func AddCartRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	user := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)
	router.GET("/api/cart", user(cart.GetCart))
	router.POST("/api/cart", user(cart.AddToCart))
	router.PUT("/api/cart/:productid", user(cart.UpdateCartItem))
	router.DELETE("/api/cart", user(cart.ClearCart))
	router.DELETE("/api/cart/:productid", user(cart.RemoveFromCart))
}

func AddOrderRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, svc *orders.Service) {
	user := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)
	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireAdmin)

	router.POST("/api/orders", user(metrics.Instrument("/api/orders", svc.CreateOrder)))
	// static "mine" cannot share a segment with :orderid in httprouter
	router.GET("/api/user/orders", user(orders.GetMyOrders))
	router.GET("/api/orders/:orderid", user(orders.GetOrder))
	router.GET("/api/orders/:orderid/invoice", user(orders.DownloadInvoice))

	router.GET("/api/orders", admin(orders.GetAllOrders))
	router.PUT("/api/orders/:orderid/status", admin(metrics.Instrument("/api/orders/:orderid/status", orders.UpdateOrderStatus)))
}

func AddPaymentRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, svc *orders.Service) {
	user := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)
	router.POST("/api/payments/create-intent", user(metrics.Instrument("/api/payments/create-intent", svc.CreateIntent)))
	router.POST("/api/payments/verify-and-order", user(metrics.Instrument("/api/payments/verify-and-order", svc.VerifyAndOrder)))
}

func AddProfileRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	user := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)

	router.GET("/api/profile", user(profile.GetProfile))
	router.PUT("/api/profile", user(profile.UpdateProfile))

	router.GET("/api/profile/addresses", user(profile.GetAddresses))
	router.POST("/api/profile/addresses", user(profile.AddAddress))
	router.PUT("/api/profile/addresses/:addressid", user(profile.UpdateAddress))
	router.DELETE("/api/profile/addresses/:addressid", user(profile.DeleteAddress))
	router.PUT("/api/profile/addresses/:addressid/default", user(profile.SetDefaultAddress))

	router.GET("/api/profile/wishlist", user(profile.GetWishlist))
	router.POST("/api/profile/wishlist/:productid", user(profile.AddToWishlist))
	router.DELETE("/api/profile/wishlist/:productid", user(profile.RemoveFromWishlist))
}

func AddUserAdminRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireAdmin)
	router.GET("/api/users", admin(profile.GetUsers))
	router.GET("/api/users/:userid", admin(profile.GetUser))
	router.PUT("/api/users/:userid", admin(profile.UpdateUser))
	router.DELETE("/api/users/:userid", admin(profile.DeleteUser))
}

func AddContentRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/content", metrics.Instrument("/api/content", content.GetAllContent))
	router.GET("/api/content/:contentid", metrics.Instrument("/api/content/:contentid", content.GetContent))

	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireAdmin)
	router.PUT("/api/content", admin(content.BulkUpdateContent))
	router.PUT("/api/content/:contentid", admin(content.UpdateContent))
	router.DELETE("/api/content/:contentid", admin(content.DeleteContent))
}

func AddCollectionRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/collections", metrics.Instrument("/api/collections", collections.GetCollections))
	router.GET("/api/collections/:slug", metrics.Instrument("/api/collections/:slug", collections.GetCollectionBySlug))

	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireAdmin)
	router.POST("/api/collections", admin(collections.CreateCollection))
	router.PUT("/api/collections/:collectionid", admin(collections.UpdateCollection))
	router.DELETE("/api/collections/:collectionid", admin(collections.DeleteCollection))
}
