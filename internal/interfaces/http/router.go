package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/suplegear-api/internal/application/auth"
	"github.com/jhoicas/suplegear-api/internal/application/usecase"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	OrderUC    *usecase.OrderUseCase
	CouponUC   *usecase.CouponUseCase
	Guard      *auth.Guard

	Pagination        pagination.Limits
	LowStockThreshold int

	// RateLimiter nil desactiva el límite de intentos de login.
	RateLimiter RateLimiterStore
	LoginPolicy RateLimitPolicy
	Logger      zerolog.Logger
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")
	authenticated := AuthMiddleware(deps.Guard)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", RateLimit(deps.LoginPolicy, deps.RateLimiter, deps.Logger), authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authenticated, authHandler.Logout)

	// Users
	userHandler := NewUserHandler(deps.UserUC, deps.Pagination)
	users := api.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/me", authenticated, userHandler.Me)
	users.Get("/search/results", authenticated, RequireAdmin(), userHandler.Search)
	users.Get("/:id", authenticated, userHandler.GetByID)
	users.Put("/:id", authenticated, userHandler.Update)
	users.Delete("/:id", authenticated, RequireAdmin(), userHandler.Delete)

	// Products (lectura pública, escritura vendor/admin)
	productHandler := NewProductHandler(deps.ProductUC, deps.Pagination, deps.LowStockThreshold)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/search/results", productHandler.Search)
	products.Get("/low-stock", authenticated, RequireVendorOrAdmin(), productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authenticated, RequireVendorOrAdmin(), productHandler.Create)
	products.Put("/:id", authenticated, RequireVendorOrAdmin(), productHandler.Update)

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.ProductUC, deps.Pagination)
	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Get("/:id/products", categoryHandler.Products)
	categories.Post("/", authenticated, RequireAdmin(), categoryHandler.Create)
	categories.Delete("/:id", authenticated, RequireAdmin(), categoryHandler.Delete)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Pagination)
	orders := api.Group("/orders", authenticated)
	orders.Get("/", orderHandler.List)
	orders.Get("/status/:status", RequireAdmin(), orderHandler.ListByStatus)
	orders.Get("/:id", orderHandler.GetByID)

	// Coupons
	couponHandler := NewCouponHandler(deps.CouponUC, deps.Pagination)
	coupons := api.Group("/coupons")
	coupons.Get("/", couponHandler.List)
	coupons.Post("/validate", authenticated, couponHandler.Validate)
	coupons.Post("/", authenticated, RequireAdmin(), couponHandler.Create)
}
