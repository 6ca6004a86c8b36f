package model

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/helper"
	"github.com/brandlens/photogen/common/logger"
)

const (
	TokenStatusEnabled  = 1 // don't use 0, 0 is the default value!
	TokenStatusDisabled = 2 // also don't use 0
	TokenStatusExpired  = 3
)

type Token struct {
	Id           int    `json:"id"`
	UserId       int    `json:"user_id" gorm:"index"`
	Key          string `json:"key" gorm:"type:char(48);uniqueIndex"`
	Status       int    `json:"status" gorm:"default:1"`
	Name         string `json:"name" gorm:"index"`
	CreatedTime  int64  `json:"created_time" gorm:"bigint"`
	AccessedTime int64  `json:"accessed_time" gorm:"bigint"`
	ExpiredTime  int64  `json:"expired_time" gorm:"bigint;default:-1"` // -1 means never expired
	RpmLimit     int    `json:"rpm_limit" gorm:"default:0"`
}

func ValidateUserToken(key string) (token *Token, err error) {
	if key == "" {
		return nil, errors.New("no key provided")
	}
	token, err = CacheGetTokenByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid token")
		}
		logger.SysError("CacheGetTokenByKey failed: " + err.Error())
		return nil, errors.New("failed to check key")
	}
	if token.Status == TokenStatusExpired {
		return nil, fmt.Errorf("token %s is expired", token.Name)
	}
	if token.Status != TokenStatusEnabled {
		return nil, fmt.Errorf("token %s is disabled", token.Name)
	}
	if token.ExpiredTime != -1 && token.ExpiredTime < helper.GetTimestamp() {
		token.Status = TokenStatusExpired
		if err := token.SelectUpdate(); err != nil {
			logger.SysError("failed to update token status: " + err.Error())
		}
		return nil, fmt.Errorf("token %s is expired", token.Name)
	}
	go func() {
		token.AccessedTime = helper.GetTimestamp()
		if err := token.SelectUpdate(); err != nil {
			logger.SysError("failed to update token accessed time: " + err.Error())
		}
	}()
	return token, nil
}

func GetTokenByKey(key string) (*Token, error) {
	keyCol := "`key`"
	if config.UsingPostgreSQL {
		keyCol = `"key"`
	}
	var token Token
	err := DB.Where(keyCol+" = ?", key).First(&token).Error
	return &token, err
}

func (t *Token) SelectUpdate() error {
	// This can update zero values
	return DB.Model(t).Select("status", "accessed_time").Updates(t).Error
}

func (t *Token) Insert() error {
	t.CreatedTime = helper.GetTimestamp()
	t.AccessedTime = helper.GetTimestamp()
	return DB.Create(t).Error
}
