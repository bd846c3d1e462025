package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestNewSession(t *testing.T) {
	t.Run("decodes jwt claims without verifying", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		token := signToken(t, jwt.MapClaims{
			"sub":    "owner@ausy.lk",
			"role":   "OWNER",
			"userId": 12,
			"exp":    exp.Unix(),
		})

		s := NewSession(token)

		assert.True(t, s.IsJWT())
		assert.False(t, s.Anonymous())
		assert.Equal(t, "owner@ausy.lk", s.Claims().Subject)
		assert.Equal(t, "owner@ausy.lk", s.Claims().Email)
		assert.Equal(t, "OWNER", s.Claims().Role)
		assert.Equal(t, int64(12), s.UserID())
		assert.True(t, exp.Equal(s.Claims().ExpiresAt))
		assert.False(t, s.Expired(time.Now()))
		assert.True(t, s.Expired(exp.Add(time.Minute)))
	})

	t.Run("numeric subject doubles as user id", func(t *testing.T) {
		s := NewSession(signToken(t, jwt.MapClaims{"sub": "7"}))
		assert.Equal(t, int64(7), s.UserID())
		assert.False(t, s.Expired(time.Now()))
	})

	t.Run("opaque token is kept as is", func(t *testing.T) {
		s := NewSession("not-a-jwt")
		assert.False(t, s.IsJWT())
		assert.Equal(t, "not-a-jwt", s.Token())
		assert.Zero(t, s.UserID())
	})

	t.Run("empty token is anonymous", func(t *testing.T) {
		s := NewSession("")
		assert.True(t, s.Anonymous())
	})
}

func TestSession_Authorize(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://localhost/api/branches", nil)
	require.NoError(t, err)

	NewSession("abc").Authorize(req)
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))

	anon, err := http.NewRequest(http.MethodGet, "http://localhost/api/branches", nil)
	require.NoError(t, err)
	NewSession("").Authorize(anon)
	assert.Empty(t, anon.Header.Get("Authorization"))
}
