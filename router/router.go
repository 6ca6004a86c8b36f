package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/brandlens/photogen/controller"
	"github.com/brandlens/photogen/middleware"
)

func SetRouter(server *gin.Engine) {
	server.GET("/api/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "",
		})
	})

	apiRouter := server.Group("/v1")
	apiRouter.Use(gzip.Gzip(gzip.DefaultCompression))
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		photosRouter := apiRouter.Group("/photos")
		photosRouter.Use(middleware.TokenAuth(), middleware.TokenRateLimit())
		{
			photosRouter.POST("/generations", controller.GenerateImages)
			photosRouter.GET("/generations", controller.ListGenerations)
		}
	}
}
