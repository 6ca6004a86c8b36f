package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/ctxkey"
	"github.com/brandlens/photogen/model"
)

type queueRelayClaims struct {
	UserId int `json:"user_id"`
	jwt.StandardClaims
}

// TokenAuth authenticates either a queue-relayed request (X-Relay-Token, JWT
// signed with the shared scheduler secret) or an end-user API token.
func TokenAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		relayToken := c.Request.Header.Get("X-Relay-Token")
		if relayToken != "" {
			claims, err := parseQueueRelayToken(relayToken)
			if err != nil {
				abortWithMessage(c, http.StatusUnauthorized, "invalid relay token: "+err.Error())
				return
			}
			c.Set(ctxkey.Id, claims.UserId)
			c.Set(ctxkey.QueueInternal, true)
			c.Next()
			return
		}

		key := c.Request.Header.Get("Authorization")
		key = strings.TrimPrefix(key, "Bearer ")
		token, err := model.ValidateUserToken(key)
		if err != nil {
			abortWithMessage(c, http.StatusUnauthorized, err.Error())
			return
		}
		c.Set(ctxkey.Id, token.UserId)
		c.Set(ctxkey.TokenId, token.Id)
		c.Set(ctxkey.TokenName, token.Name)
		c.Set("token_rpm", token.RpmLimit)
		c.Next()
	}
}

func parseQueueRelayToken(tokenString string) (*queueRelayClaims, error) {
	if config.QueueRelaySecret == "" {
		// without a configured secret any HS256 token signed with the empty
		// key would verify, so the relay path must stay closed
		return nil, errors.New("queue relay is not configured")
	}
	claims := &queueRelayClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.NewValidationError("unexpected signing method", jwt.ValidationErrorSignatureInvalid)
		}
		return []byte(config.QueueRelaySecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("token is not valid", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
