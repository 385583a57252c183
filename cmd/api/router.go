package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/middleware"
	"catalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupSubCategoryRoutes(v1, c)
		setupProviderRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/check-token", c.UserHandler.CheckToken)
	}

	users := v1.Group("/users", middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("", c.UserHandler.List)
		users.GET("/:id", c.UserHandler.Get)
	}
}

func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		// reads are public, writes need a token
		categories.GET("", c.CategoryHandler.List)
		categories.POST("", middleware.AuthMiddleware(c.JWTManager), c.CategoryHandler.Create)
		categories.PUT("/:id", middleware.AuthMiddleware(c.JWTManager), c.CategoryHandler.Update)
		categories.DELETE("/:id", middleware.AuthMiddleware(c.JWTManager), c.CategoryHandler.Delete)
	}
}

func setupSubCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	subCategories := v1.Group("/sub-categories")
	{
		// :id is the parent category on the collection verbs and the
		// sub-category itself on update/delete
		subCategories.GET("/:id", c.SubCategoryHandler.ListByParent)
		subCategories.POST("/:id", middleware.AuthMiddleware(c.JWTManager), c.SubCategoryHandler.Create)
		subCategories.PUT("/:id", middleware.AuthMiddleware(c.JWTManager), c.SubCategoryHandler.Update)
		subCategories.DELETE("/:id", middleware.AuthMiddleware(c.JWTManager), c.SubCategoryHandler.Delete)
	}
}

func setupProviderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	providers := v1.Group("/service-providers")
	{
		providers.GET("/search", c.ProviderHandler.Search)
		providers.GET("/by-id/:id", c.ProviderHandler.Get)

		// :id is the parent sub-category on the collection verbs and the
		// provider itself on update/delete
		providers.GET("/:id", c.ProviderHandler.ListByParent)
		providers.POST("/:id", middleware.AuthMiddleware(c.JWTManager), c.ProviderHandler.Create)
		providers.PUT("/:id", middleware.AuthMiddleware(c.JWTManager), c.ProviderHandler.Update)
		providers.DELETE("/:id", middleware.AuthMiddleware(c.JWTManager), c.ProviderHandler.Delete)
		providers.POST("/:id/bulk-import", middleware.AuthMiddleware(c.JWTManager), c.ProviderHandler.BulkImport)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = err.Error()
			status = http.StatusServiceUnavailable
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(checkCtx); err != nil {
			// cache is optional, report but do not fail the check
			cacheStatus = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status":   dbStatus == "ok",
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
