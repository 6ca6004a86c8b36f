package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlens/photogen/common/config"
)

func signRelayToken(t *testing.T, secret string, userId int) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &queueRelayClaims{UserId: userId})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseQueueRelayToken(t *testing.T) {
	original := config.QueueRelaySecret
	defer func() { config.QueueRelaySecret = original }()
	config.QueueRelaySecret = "relay-secret"

	claims, err := parseQueueRelayToken(signRelayToken(t, "relay-secret", 42))
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserId)
}

func TestParseQueueRelayTokenWrongSecret(t *testing.T) {
	original := config.QueueRelaySecret
	defer func() { config.QueueRelaySecret = original }()
	config.QueueRelaySecret = "relay-secret"

	_, err := parseQueueRelayToken(signRelayToken(t, "some-other-secret", 42))
	require.Error(t, err)
}

// an unset secret must close the relay path entirely: otherwise a token
// signed with the empty key would verify and grant arbitrary identity
func TestParseQueueRelayTokenUnconfiguredSecret(t *testing.T) {
	original := config.QueueRelaySecret
	defer func() { config.QueueRelaySecret = original }()
	config.QueueRelaySecret = ""

	_, err := parseQueueRelayToken(signRelayToken(t, "", 42))
	require.Error(t, err)
}

func TestParseQueueRelayTokenRejectsUnsignedAlg(t *testing.T) {
	original := config.QueueRelaySecret
	defer func() { config.QueueRelaySecret = original }()
	config.QueueRelaySecret = "relay-secret"

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &queueRelayClaims{UserId: 42})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = parseQueueRelayToken(signed)
	require.Error(t, err)
}
