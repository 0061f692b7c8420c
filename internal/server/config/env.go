package config

import (
	"os"
	"strings"

	"github.com/dmitrijs2005/patientauth/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that set them.
// JWT_SECRET is the name deployments of this service have always used.
var envBindings = map[string][]string{
	"endpoint_addr_http":             {"ENDPOINT_ADDR_HTTP"},
	"endpoint_addr_grpc":             {"ENDPOINT_ADDR_GRPC"},
	"database_dsn":                   {"DATABASE_DSN"},
	"secret_key":                     {"JWT_SECRET", "SECRET_KEY"},
	"access_token_validity_duration": {"ACCESS_TOKEN_VALIDITY_DURATION"},
	"bcrypt_cost":                    {"BCRYPT_COST"},
	"request_timeout":                {"REQUEST_TIMEOUT"},
	"health_check_interval":          {"HEALTH_CHECK_INTERVAL"},
	"cors_allowed_origins":           {"CORS_ALLOWED_ORIGINS"},
	"log_level":                      {"LOG_LEVEL"},
	"log_backend":                    {"LOG_BACKEND"},
	"otlp_endpoint":                  {"OTLP_ENDPOINT"},
}

// parseEnv overlays values from the process environment. A dotenv file is
// loaded first when given with -env, or when ./.env exists; variables already
// set in the environment are never overwritten by it.
func parseEnv(config *Config) {
	envFile := flagx.EnvFileFlag()
	if envFile == "" {
		if _, err := os.Stat(".env"); err == nil {
			envFile = ".env"
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	}

	v := newEnvViper()

	if v.IsSet("endpoint_addr_http") {
		config.EndpointAddrHTTP = v.GetString("endpoint_addr_http")
	}
	if v.IsSet("endpoint_addr_grpc") {
		config.EndpointAddrGRPC = v.GetString("endpoint_addr_grpc")
	}
	if v.IsSet("database_dsn") {
		config.DatabaseDSN = v.GetString("database_dsn")
	}
	if v.IsSet("secret_key") {
		config.SecretKey = v.GetString("secret_key")
	}
	if d := v.GetDuration("access_token_validity_duration"); d > 0 {
		config.AccessTokenValidityDuration = d
	}
	if n := v.GetInt("bcrypt_cost"); n > 0 {
		config.BcryptCost = n
	}
	if d := v.GetDuration("request_timeout"); d > 0 {
		config.RequestTimeout = d
	}
	if d := v.GetDuration("health_check_interval"); d > 0 {
		config.HealthCheckInterval = d
	}
	if v.IsSet("cors_allowed_origins") {
		config.CORSAllowedOrigins = splitList(v.GetString("cors_allowed_origins"))
	}
	if v.IsSet("log_level") {
		config.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("log_backend") {
		config.LogBackend = v.GetString("log_backend")
	}
	if v.IsSet("otlp_endpoint") {
		config.OTLPEndpoint = v.GetString("otlp_endpoint")
	}
}

func newEnvViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for key, names := range envBindings {
		input := append([]string{key}, names...)
		_ = v.BindEnv(input...)
	}
	return v
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
