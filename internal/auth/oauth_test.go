package auth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "maria", UsernameFromEmail("maria@example.com"))
	assert.Equal(t, "maria", UsernameFromEmail("maria"))
	assert.Equal(t, "first.last", UsernameFromEmail("first.last@uni.edu"))
}

func TestAuthURLCarriesStateAndRedirect(t *testing.T) {
	provider := NewGoogleProvider("client-id", "client-secret", "http://localhost:8080/auth/google/callback")

	state, err := NewState()
	require.NoError(t, err)

	parsed, err := url.Parse(provider.AuthURL(state))
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, state, query.Get("state"))
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "http://localhost:8080/auth/google/callback", query.Get("redirect_uri"))
}

func TestNewStateIsUnique(t *testing.T) {
	a, err := NewState()
	require.NoError(t, err)
	b, err := NewState()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
