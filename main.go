package main

import (
	"fmt"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/brandlens/photogen/common"
	"github.com/brandlens/photogen/common/client"
	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/logger"
	"github.com/brandlens/photogen/controller"
	"github.com/brandlens/photogen/middleware"
	"github.com/brandlens/photogen/model"
	"github.com/brandlens/photogen/router"
)

func main() {
	_ = godotenv.Load()
	logger.SetupLogger()
	logger.SysLogf("photogen started")

	if config.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.DebugEnabled {
		logger.SysLog("running in debug mode")
	}

	if err := model.InitDB(); err != nil {
		logger.FatalLog("failed to initialize database: " + err.Error())
	}
	defer func() {
		err := model.CloseDB()
		if err != nil {
			logger.FatalLog("failed to close database: " + err.Error())
		}
	}()

	if err := common.InitRedisClient(); err != nil {
		logger.FatalLog("failed to initialize Redis: " + err.Error())
	}

	client.Init()
	controller.InitPipeline()

	server := gin.New()
	server.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.SysError(fmt.Sprintf("panic detected: %v", err))
		c.JSON(500, gin.H{
			"error": gin.H{
				"message": fmt.Sprintf("panic detected: %v", err),
				"type":    "photogen_panic",
			},
		})
	}))
	server.Use(middleware.RequestId())
	server.Use(cors.Default())
	middleware.SetUpLogger(server)

	router.SetRouter(server)

	port := strconv.Itoa(config.Port)
	logger.SysLogf("server listening on port %s", port)
	err := server.Run(":" + port)
	if err != nil {
		logger.FatalLog("failed to start HTTP server: " + err.Error())
	}
}
