package model

import (
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/brandlens/photogen/common"
	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/logger"
)

var TokenCacheSeconds = config.SyncFrequency

// 内存缓存, redis 未开启时兜底
var memoryCache = gocache.New(time.Duration(config.SyncFrequency)*time.Second, 10*time.Minute)

func CacheGetTokenByKey(key string) (*Token, error) {
	if !common.RedisEnabled {
		if cached, ok := memoryCache.Get("token:" + key); ok {
			token := cached.(Token)
			return &token, nil
		}
		token, err := GetTokenByKey(key)
		if err != nil {
			return nil, err
		}
		memoryCache.SetDefault("token:"+key, *token)
		return token, nil
	}
	tokenObjectString, err := common.RedisGet(fmt.Sprintf("token:%s", key))
	if err != nil {
		token, err := GetTokenByKey(key)
		if err != nil {
			return nil, err
		}
		jsonBytes, err := json.Marshal(token)
		if err != nil {
			return nil, err
		}
		err = common.RedisSet(fmt.Sprintf("token:%s", key), string(jsonBytes), time.Duration(TokenCacheSeconds)*time.Second)
		if err != nil {
			logger.SysError("Redis set token error: " + err.Error())
		}
		return token, nil
	}
	var token Token
	err = json.Unmarshal([]byte(tokenObjectString), &token)
	return &token, err
}

func CacheInvalidateToken(key string) {
	if common.RedisEnabled {
		if err := common.RedisDel(fmt.Sprintf("token:%s", key)); err != nil {
			logger.SysError("Redis del token error: " + err.Error())
		}
		return
	}
	memoryCache.Delete("token:" + key)
}
