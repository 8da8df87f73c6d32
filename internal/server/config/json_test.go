package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	body := `{
		"endpoint_addr_http": ":9999",
		"database_dsn": "postgres://u:p@h:5432/db",
		"secret_key": "json-secret",
		"jwt_algorithm": "HS384",
		"access_token_validity_duration": "30m",
		"refresh_token_validity_duration": "240h",
		"max_page_size": 25
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-c", path}

	config := &Config{}
	config.LoadDefaults()
	parseJson(config)

	assert.Equal(t, ":9999", config.EndpointAddrHTTP)
	assert.Equal(t, "postgres://u:p@h:5432/db", config.DatabaseDSN)
	assert.Equal(t, "json-secret", config.SecretKey)
	assert.Equal(t, "HS384", config.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, config.AccessTokenValidityDuration)
	assert.Equal(t, 240*time.Hour, config.RefreshTokenValidityDuration)
	assert.Equal(t, 25, config.MaxPageSize)

	// untouched fields keep defaults
	assert.Equal(t, "estate-media", config.S3Bucket)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd"}

	config := &Config{}
	config.LoadDefaults()
	before := *config
	parseJson(config)

	assert.Equal(t, before, *config)
}
