package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	auth := NewAuth("test-secret")
	userID := uuid.New()

	token, err := auth.GenerateToken(userID)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewAuth("secret-a").GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewAuth("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestProtect(t *testing.T) {
	auth := NewAuth("test-secret")
	userID := uuid.New()

	var gotUserID uuid.UUID
	handler := auth.Protect(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})

	// Missing header
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/list", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token
	token, err := auth.GenerateToken(userID)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/list", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotUserID)
}
