package helper

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brandlens/photogen/common/random"
)

const RequestIdKey = "X-Photogen-Request-Id"

func GetTimestamp() int64 {
	return time.Now().Unix()
}

func GetTimeString() string {
	now := time.Now()
	return fmt.Sprintf("%s%d", now.Format("20060102150405"), now.UnixNano()%1e9)
}

func GenRequestID() (id string) {
	return GetTimeString() + random.GetRandomNumberString(8)
}

func SetRequestID(c *gin.Context, id string) {
	c.Set(RequestIdKey, id)
	c.Header(RequestIdKey, id)
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIdKey)
}

func MessageWithRequestId(message string, id string) string {
	if strings.Contains(message, "(request id:") {
		return message
	}
	return fmt.Sprintf("%s (request id: %s)", message, id)
}

func AssignOrDefault(value string, defaultValue string) string {
	if len(value) != 0 {
		return value
	}
	return defaultValue
}
