package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/brandlens/photogen/common"
	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/ctxkey"
)

var memoryRateLimitCache = cache.New(time.Minute, 10*time.Minute)

func redisRateLimiter(c *gin.Context, key string, maxRequestNum int, duration int64) bool {
	ctx := context.Background()
	rdb := common.RDB
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		// redis being down should not take the API down with it
		return true
	}
	if count == 1 {
		rdb.Expire(ctx, key, time.Duration(duration)*time.Second)
	}
	if count > int64(maxRequestNum) {
		c.Writer.Header().Set("X-Ratelimit-Limit-Requests", fmt.Sprintf("%d", maxRequestNum))
		return false
	}
	return true
}

func memoryRateLimiter(key string, maxRequestNum int, duration int64) bool {
	_ = memoryRateLimitCache.Add(key, int64(0), time.Duration(duration)*time.Second)
	count, err := memoryRateLimitCache.IncrementInt64(key, 1)
	if err != nil {
		return true
	}
	return count <= int64(maxRequestNum)
}

func rateLimitFactory(maxRequestNum int, duration int64, mark string) func(c *gin.Context) {
	if maxRequestNum == 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return func(c *gin.Context) {
		key := fmt.Sprintf("rateLimit:%s:%s", mark, c.ClientIP())
		var allowed bool
		if common.RedisEnabled {
			allowed = redisRateLimiter(c, key, maxRequestNum, duration)
		} else {
			allowed = memoryRateLimiter(key, maxRequestNum, duration)
		}
		if !allowed {
			abortWithMessage(c, http.StatusTooManyRequests,
				fmt.Sprintf("rate limit reached: limit %d per %d seconds", maxRequestNum, duration))
			return
		}
		c.Next()
	}
}

func GlobalAPIRateLimit() func(c *gin.Context) {
	return rateLimitFactory(config.GlobalApiRateLimitNum, config.GlobalApiRateLimitDuration, "GA")
}

// TokenRateLimit enforces the per-token RPM set on the API token row. Queue
// relays carry no token, the scheduler paces itself.
func TokenRateLimit() func(c *gin.Context) {
	return func(c *gin.Context) {
		rpm := c.GetInt("token_rpm")
		if rpm == 0 {
			c.Next()
			return
		}
		key := fmt.Sprintf("rateLimit:TK:%d", c.GetInt(ctxkey.TokenId))
		var allowed bool
		if common.RedisEnabled {
			allowed = redisRateLimiter(c, key, rpm, 60)
		} else {
			allowed = memoryRateLimiter(key, rpm, 60)
		}
		if !allowed {
			abortWithMessage(c, http.StatusTooManyRequests,
				fmt.Sprintf("rate limit reached for token on requests per minute (RPM): limit %d", rpm))
			return
		}
		c.Next()
	}
}
