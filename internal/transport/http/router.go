package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/inventory/internal/handlers"
	"github.com/Skotchmaster/inventory/internal/middleware/auth"
)

type Deps struct {
	JWTSecret       []byte
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	ProfileHandler  *handlers.ProfileHandler
	SaleHandler     *handlers.SaleHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")
	v1.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)

	if d.SearchHandler != nil && d.SearchHandler.ES != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/name/:name", d.ProductHandler.GetProductByName)

	manage := auth.RequireRoles(d.JWTSecret, handlers.RoleAdmin, handlers.RoleManager)
	products.POST("", d.ProductHandler.CreateProduct, manage)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, manage)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, manage)

	categories := v1.Group("/categories")
	categories.GET("", d.CategoryHandler.GetCategories)
	categories.GET("/:id", d.CategoryHandler.GetCategory)
	categories.GET("/title/:title", d.CategoryHandler.GetCategoryByTitle)
	categories.POST("", d.CategoryHandler.CreateCategory, manage)
	categories.PUT("/:id", d.CategoryHandler.UpdateCategory, manage)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory, manage)

	login := auth.RequireAuth(d.JWTSecret)
	profiles := v1.Group("/profiles")
	profiles.GET("", d.ProfileHandler.GetProfileUsers)
	profiles.GET("/:id", d.ProfileHandler.GetProfileUser)
	profiles.POST("", d.ProfileHandler.CreateProfileUser, login)
	profiles.PUT("/:id", d.ProfileHandler.UpdateProfileUser, login)
	profiles.DELETE("/:id", d.ProfileHandler.DeleteProfileUser, login)

	sell := auth.RequireRoles(d.JWTSecret, handlers.RoleAdmin, handlers.RoleWorker)
	sales := v1.Group("/sales")
	sales.GET("", d.SaleHandler.GetSales)
	sales.GET("/:id", d.SaleHandler.GetSale)
	sales.POST("", d.SaleHandler.CreateSale, sell)
	sales.PUT("/:id", d.SaleHandler.UpdateSale, sell)
	sales.DELETE("/:id", d.SaleHandler.DeleteSale, sell)
}
