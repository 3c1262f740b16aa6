package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("SMHOME_SERVER_URL", "http://shop.local:8080")
	t.Setenv("SMHOME_CLIENT_TIMEOUT", "1500ms")

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseEnv(&c))

	assert.Equal(t, "http://shop.local:8080", c.ServerURL)
	assert.Equal(t, 1500*time.Millisecond, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("SMHOME_ONLINE_CHECK_INTERVAL", "soon")

	var c Config
	c.LoadDefaults()
	assert.Error(t, parseEnv(&c))
}
