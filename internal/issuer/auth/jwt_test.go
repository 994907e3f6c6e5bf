package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/photosync/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	tok, err := GenerateToken("ios-user", secret, time.Minute)
	require.NoError(t, err)

	uid, err := GetUserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "ios-user", uid)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("u", secret, time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(tok, []byte("other"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	tok, err := GenerateToken("u", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(tok, secret)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParse_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not.a.jwt", secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_RequiresExpiry(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u"}).SignedString(secret)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(tok, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
		UserID:           "u",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(tok, secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParse_FallsBackToSubject(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "sub-user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(secret)
	require.NoError(t, err)

	uid, err := GetUserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "sub-user", uid)
}
