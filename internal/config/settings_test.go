package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	require.Equal(t, "55080e3fd8d0644", settings.ClientID)
	require.Equal(t, "https://api.imgur.com", settings.APIBase)
	require.True(t, strings.HasSuffix(settings.CredentialsPath, ".imgurup.conf"))
	require.Equal(t, 2, settings.UploadMaxAttempts)
	require.Equal(t, time.Second, settings.UploadRetryDelay)
}

func TestSettings_ApplyEnv(t *testing.T) {
	t.Setenv("IMGUR_CLIENT_ID", "custom-id")
	t.Setenv("IMGUR_CLIENT_SECRET", "custom-secret")
	t.Setenv("IMGUR_API_BASE", "http://localhost:1234")
	t.Setenv("IMGUR_CONFIG", "/tmp/alt.conf")

	settings := DefaultSettings()
	settings.ApplyEnv()

	require.Equal(t, "custom-id", settings.ClientID)
	require.Equal(t, "custom-secret", settings.ClientSecret)
	require.Equal(t, "http://localhost:1234", settings.APIBase)
	require.Equal(t, "/tmp/alt.conf", settings.CredentialsPath)
}
