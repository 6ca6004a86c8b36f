package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/brandlens/photogen/common/ctxkey"
	"github.com/brandlens/photogen/common/helper"
)

func SetUpLogger(server *gin.Engine) {
	server.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		var requestID string
		var tokenName string
		if param.Keys != nil {
			if id, ok := param.Keys[helper.RequestIdKey].(string); ok {
				requestID = id
			}
			if name, ok := param.Keys[ctxkey.TokenName].(string); ok {
				tokenName = name
			}
		}
		return fmt.Sprintf("[GIN] %s | %s | %3d | %13v | %15s | %s | %7s %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			requestID,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			tokenName,
			param.Method,
			param.Path,
		)
	}))
}
