package google

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthConfigRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	_, err := oauthConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
}

func TestOAuthConfigScopes(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

	conf, err := oauthConfig()
	require.NoError(t, err)

	assert.Equal(t, "client-id", conf.ClientID)
	assert.Len(t, conf.Scopes, 2)
	for _, scope := range conf.Scopes {
		assert.True(t, strings.Contains(scope, "gmail."),
			"only Gmail scopes should be requested, got %s", scope)
	}
}

func TestGetAuthURL(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

	url, err := GetAuthURL()
	require.NoError(t, err)
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "access_type=offline")
}

func TestTokenFileLocation(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG cache path only applies to unix-like systems")
	}
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")

	assert.Equal(t, "/tmp/cache/mailbrief/google.token", tokenFile())
}
