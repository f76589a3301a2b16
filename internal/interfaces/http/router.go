package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mashop-api/internal/application/auth"
	"github.com/jhoicas/mashop-api/internal/application/usecase"
	"github.com/jhoicas/mashop-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC  *usecase.CatalogUseCase
	CategoryUC *usecase.CategoryUseCase
	ActivityUC *usecase.ActivityLog
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Las lecturas del catálogo y las categorías son
// públicas (la tienda se navega sin sesión); toda mutación exige Bearer Token, y la
// administración de usuarios y actividades exige además rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)

	requireAuth := AuthMiddleware(deps.JWTSecret)
	requireAdmin := RequireRole(entity.RoleAdmin)

	// Products: lectura pública, mutación autenticada
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", requireAuth, productHandler.Create)
	products.Put("/:id", requireAuth, productHandler.Update)
	products.Delete("/:id", requireAuth, productHandler.Delete)

	// Categories: lectura pública, mutación autenticada
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", requireAuth, categoryHandler.Create)
	categories.Put("/:id", requireAuth, categoryHandler.Update)
	categories.Delete("/:id", requireAuth, categoryHandler.Delete)

	// Users: solo admin
	users := api.Group("/users", requireAuth, requireAdmin)
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Activities: solo admin
	activities := api.Group("/activities", requireAuth, requireAdmin)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activities.Get("/", activityHandler.List)
}
