package handler

import (
	"github.com/labstack/echo/v4"

	"store-admin-service/internal/middleware"
)

// RegisterRoutes wires the authenticated resource surface. Store routes are
// scoped by the caller's identity; the catalog routes additionally resolve
// the :storeId path parameter against store ownership.
func RegisterRoutes(e *echo.Echo) {
	// Store API routes
	storeAPI := e.Group("/api/stores", middleware.AuthMiddleware)
	storeAPI.GET("", ListStores)
	storeAPI.POST("", CreateStore)
	storeAPI.GET("/:storeId", GetStore)
	storeAPI.PATCH("/:storeId", UpdateStore)
	storeAPI.DELETE("/:storeId", DeleteStore)

	// Store-scoped catalog routes
	catalogAPI := e.Group("/api/:storeId", middleware.AuthMiddleware)

	catalogAPI.GET("/dashboards", ListDashboards)
	catalogAPI.POST("/dashboards", CreateDashboard)
	catalogAPI.GET("/dashboards/:id", GetDashboard)
	catalogAPI.PATCH("/dashboards/:id", UpdateDashboard)
	catalogAPI.DELETE("/dashboards/:id", DeleteDashboard)

	catalogAPI.GET("/categories", ListCategories)
	catalogAPI.POST("/categories", CreateCategory)
	catalogAPI.GET("/categories/:id", GetCategory)
	catalogAPI.PATCH("/categories/:id", UpdateCategory)
	catalogAPI.DELETE("/categories/:id", DeleteCategory)

	catalogAPI.GET("/sizes", ListSizes)
	catalogAPI.POST("/sizes", CreateSize)
	catalogAPI.GET("/sizes/:id", GetSize)
	catalogAPI.PATCH("/sizes/:id", UpdateSize)
	catalogAPI.DELETE("/sizes/:id", DeleteSize)

	catalogAPI.GET("/colors", ListColors)
	catalogAPI.POST("/colors", CreateColor)
	catalogAPI.GET("/colors/:id", GetColor)
	catalogAPI.PATCH("/colors/:id", UpdateColor)
	catalogAPI.DELETE("/colors/:id", DeleteColor)

	catalogAPI.GET("/product-names", ListProductNames)
	catalogAPI.POST("/product-names", CreateProductName)
	catalogAPI.GET("/product-names/:id", GetProductName)
	catalogAPI.PATCH("/product-names/:id", UpdateProductName)
	catalogAPI.DELETE("/product-names/:id", DeleteProductName)

	catalogAPI.GET("/products", ListProducts)
	catalogAPI.POST("/products", CreateProduct)
	catalogAPI.GET("/products/:id", GetProduct)
	catalogAPI.PATCH("/products/:id", UpdateProduct)
	catalogAPI.DELETE("/products/:id", DeleteProduct)

	catalogAPI.GET("/orders", ListOrders)
	catalogAPI.POST("/orders", CreateOrder)
	catalogAPI.GET("/orders/:id", GetOrder)
	catalogAPI.PATCH("/orders/:id", UpdateOrder)
	catalogAPI.DELETE("/orders/:id", DeleteOrder)
}
