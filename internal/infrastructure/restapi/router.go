package restapi

import (
	"wallet_searcher/internal/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterOptions задает внешние зависимости роутера.
type RouterOptions struct {
	SwaggerEnabled  bool
	SwaggerSpecPath string // путь к статическому swagger.yaml
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(handler *SearchHandler, zapLogger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(utils.ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	// Браузерный фронтенд живет на другом origin.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/searches/tokens", handler.StartTokenSearchHandler)
		v1.GET("/searches/tokens/results", handler.GetTokenResultsHandler)
		v1.GET("/searches/tokens/progress", handler.GetTokenProgressHandler)
		v1.GET("/searches/tokens/export", handler.ExportTokenCSVHandler)

		v1.POST("/searches/nfts", handler.StartNFTSearchHandler)
		v1.GET("/searches/nfts/results", handler.GetNFTResultsHandler)
		v1.GET("/searches/nfts/progress", handler.GetNFTProgressHandler)
		v1.GET("/searches/nfts/export", handler.ExportNFTCSVHandler)

		v1.PUT("/settings/rpc", handler.SetRPCEndpointHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.SwaggerEnabled {
		router.StaticFile("/docs/swagger.yaml", opts.SwaggerSpecPath)
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	return router
}
