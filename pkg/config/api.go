package config

import "time"

// APIConfig holds runtime configuration for the API service.
type APIConfig struct {
	Environment   string
	Addr          string
	DatabaseURL   string
	MigrationsDir string
	LogLevel      string

	// Session and CSRF secrets. The session cookie carries an opaque random
	// token; the secret only signs CSRF tokens and trip share links.
	AppSecret string

	SessionCookieName string
	SessionTTL        time.Duration
	ShareLinkTTL      time.Duration

	RateLimitWindow    time.Duration
	RateLimitGlobal    int
	RateLimitAuth      int
	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int
}

// LoadAPIConfig constructs an APIConfig from environment variables.
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Environment:        GetString("APP_ENV", "development"),
		Addr:               GetString("API_ADDR", ":4000"),
		DatabaseURL:        GetString("DATABASE_URL", "postgres://travel:travel@db:5432/travel?sslmode=disable"),
		MigrationsDir:      GetString("DB_MIGRATIONS_DIR", "db/migrations"),
		LogLevel:           GetString("LOG_LEVEL", "info"),
		AppSecret:          GetString("APP_SECRET", "supersecuresecret"),
		SessionCookieName:  GetString("SESSION_COOKIE_NAME", "travel_session"),
		SessionTTL:         time.Duration(GetInt("SESSION_TTL_HOURS", 168)) * time.Hour,
		ShareLinkTTL:       time.Duration(GetInt("SHARE_LINK_TTL_HOURS", 720)) * time.Hour,
		RateLimitWindow:    GetDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitGlobal:    GetInt("RATE_LIMIT_GLOBAL", 100),
		RateLimitAuth:      GetInt("RATE_LIMIT_AUTH", 10),
		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
	}
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, no fallback secrets).
func (c APIConfig) IsProduction() bool {
	return c.Environment == "production"
}
