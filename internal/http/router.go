package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/http/handlers"
	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Auth endpoints are open but throttled per IP.
	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshTokenHandler)
		r.Post("/logout", handlers.LogoutHandler)
	})

	// Any authenticated account. This is the cashier's working surface.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/search", handlers.FilterProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)

		r.Post("/carts", handlers.CreateCartHandler)
		r.Get("/carts/{id}", handlers.GetCartHandler)
		r.Delete("/carts/{id}", handlers.DeleteCartHandler)
		r.Post("/carts/{id}/items", handlers.AddCartItemHandler)
		r.Delete("/carts/{id}/items", handlers.ClearCartHandler)
		r.Patch("/carts/{id}/items/{productID}", handlers.UpdateCartItemHandler)
		r.Delete("/carts/{id}/items/{productID}", handlers.RemoveCartItemHandler)
		r.Post("/carts/{id}/checkout", handlers.CheckoutHandler)

		r.Get("/sales", handlers.GetSalesHandler)
		r.Get("/sales/{id}", handlers.GetSaleByIDHandler)

		r.Get("/settings", handlers.GetSettingsHandler)
	})

	// Catalog and stock management, reporting.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Use(RequireRole(models.RoleManager))

		r.Post("/products", handlers.CreateProductHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Get("/products/low-stock", handlers.GetLowStockProductsHandler)
		r.Post("/products/{id}/restock", handlers.RestockProductHandler)
		r.Post("/products/{id}/adjust", handlers.AdjustProductStockHandler)
		r.Get("/products/{id}/movements", handlers.GetProductMovementsHandler)
		r.Get("/products/{id}/movements/export", handlers.ExportMovementsHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Get("/products/export", handlers.ExportProductsHandler)

		r.Post("/ingredients", handlers.CreateIngredientHandler)
		r.Get("/ingredients", handlers.GetIngredientsHandler)
		r.Get("/ingredients/{id}", handlers.GetIngredientByIDHandler)
		r.Put("/ingredients/{id}", handlers.UpdateIngredientHandler)
		r.Delete("/ingredients/{id}", handlers.DeleteIngredientHandler)
		r.Post("/ingredients/{id}/adjust", handlers.AdjustIngredientStockHandler)

		r.Get("/sales/export", handlers.ExportSalesHandler)

		r.Get("/reports/summary", handlers.GetSalesSummaryHandler)
		r.Get("/reports/daily", handlers.GetDailySalesHandler)
		r.Get("/reports/top-products", handlers.GetTopProductsHandler)
		r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	})

	// Administration.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Use(RequireRole(models.RoleAdmin))

		r.Post("/admin/users", handlers.RegisterAsAdminHandler)
		r.Get("/admin/users", handlers.GetUsersHandler)
		r.Delete("/admin/users/{id}", handlers.DeleteUserHandler)

		r.Delete("/sales/{id}", handlers.DeleteSaleHandler)

		r.Get("/audit", handlers.GetAuditLogHandler)
		r.Put("/settings", handlers.UpdateSettingsHandler)
	})

	return r
}
