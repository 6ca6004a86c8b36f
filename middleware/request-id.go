package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/brandlens/photogen/common/helper"
)

func RequestId() func(c *gin.Context) {
	return func(c *gin.Context) {
		id := helper.GenRequestID()
		helper.SetRequestID(c, id)
		ctx := context.WithValue(c.Request.Context(), helper.RequestIdKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
