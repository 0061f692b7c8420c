package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":             "www.example:8081",
		"endpoint_addr_grpc":             "www.example:9000",
		"database_dsn":                   "postgres://db",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "24h",
		"bcrypt_cost":                    12,
		"request_timeout":                "3s",
		"health_check_interval":          5000000000,
		"cors_allowed_origins":           []string{"https://clinic.example"},
		"log_level":                      "warn",
		"log_backend":                    "slog",
		"otlp_endpoint":                  "collector:4318",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		want := &Config{
			EndpointAddrHTTP:            "www.example:8081",
			EndpointAddrGRPC:            "www.example:9000",
			DatabaseDSN:                 "postgres://db",
			SecretKey:                   "my_secret_key",
			AccessTokenValidityDuration: 24 * time.Hour,
			BcryptCost:                  12,
			RequestTimeout:              3 * time.Second,
			HealthCheckInterval:         5 * time.Second,
			CORSAllowedOrigins:          []string{"https://clinic.example"},
			LogLevel:                    "warn",
			LogBackend:                  "slog",
			OTLPEndpoint:                "collector:4318",
		}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"secret_key": "only"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := defaults()
		parseJson(cfg)

		want := defaults()
		want.SecretKey = "only"
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := defaults()
		parseJson(cfg)

		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
