package routes

import (
	"github.com/easayliu/media-url-resolver/internal/application/container"
	"github.com/easayliu/media-url-resolver/internal/interfaces/http/handlers"
	"github.com/easayliu/media-url-resolver/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutesWithContainer 使用ServiceContainer设置路由
func SetupRoutesWithContainer(container *container.ServiceContainer) *gin.Engine {
	router := gin.New()

	// 全局中间件
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandlerMiddleware())

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	mediaHandler := handlers.NewMediaHandler(container)
	cacheHandler := handlers.NewCacheHandler(container)
	catalogHandler := handlers.NewCatalogHandler(container)

	api := router.Group("/api/v1")
	{
		// 健康检查
		api.GET("/health", handlers.HealthCheck)

		// 响应式图片地址
		media := api.Group("/media")
		{
			media.GET("/resize", mediaHandler.ResizeURL)
			media.GET("/redirect", mediaHandler.Redirect)
		}

		// 缓存管理
		cache := api.Group("/cache")
		{
			cache.GET("/stats", cacheHandler.Stats)
			cache.POST("/invalidate", cacheHandler.Invalidate)
			cache.DELETE("", cacheHandler.Flush)
		}

		// 媒体目录
		catalog := api.Group("/catalog")
		{
			catalog.GET("/libraries", catalogHandler.ListLibraries)
			catalog.PUT("/libraries", catalogHandler.UpsertLibrary)
			catalog.GET("/libraries/:id/files", catalogHandler.ListFiles)
			catalog.PUT("/files", catalogHandler.UpsertFile)
			catalog.DELETE("/files/:guid", catalogHandler.DeleteFile)
			catalog.POST("/sync", catalogHandler.Sync)
		}
	}

	return router
}
