package auth_test

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-ticketing/internal/auth"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestExtractTokenFromRequest(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/api/orders", nil)

	_, err := auth.ExtractTokenFromRequest(req)
	assert.Error(t, err, "Expected an error without an Authorization header")

	req.Header.Set("Authorization", "Basic abc123")
	_, err = auth.ExtractTokenFromRequest(req)
	assert.Error(t, err, "Expected an error for a non-bearer scheme")

	req.Header.Set("Authorization", "Bearer my-token")
	token, err := auth.ExtractTokenFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "my-token", token)

	// Scheme matching is case-insensitive.
	req.Header.Set("Authorization", "bearer my-token")
	token, err = auth.ExtractTokenFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "my-token", token)
}

func TestExtractUserIDFromJWT(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user123"})

	userID, err := auth.ExtractUserIDFromJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", userID)
}

func TestExtractUserIDFromJWTErrors(t *testing.T) {
	_, err := auth.ExtractUserIDFromJWT("")
	assert.Error(t, err)

	_, err = auth.ExtractUserIDFromJWT("not-a-jwt")
	assert.Error(t, err)

	missingSub := signedToken(t, jwt.MapClaims{"email": "rider@example.com"})
	_, err = auth.ExtractUserIDFromJWT(missingSub)
	assert.Error(t, err)
}
