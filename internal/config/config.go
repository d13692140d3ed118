package config

// Config holds all application configuration, grouped by concern. It is
// constructed once at startup and passed by reference to every component
// that needs it; nothing reads the environment after Load returns.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	API       APIConfig       `mapstructure:"api"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains MongoDB settings.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri" validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// APIConfig contains settings consumed by the response pipeline. The
// current API version is deliberately absent: it is derived from the
// dispatch registry at startup, never configured.
type APIConfig struct {
	// DocsBaseURL prefixes generated documentation links. Empty means
	// links are emitted relative to the serving host.
	DocsBaseURL string `mapstructure:"docs_base_url"`

	// DevMode allows internal error text to reach clients. Never enable
	// in production.
	DevMode bool `mapstructure:"dev_mode"`
}

// RateLimitConfig contains per-IP request throttling settings.
type RateLimitConfig struct {
	RequestLimit  int `mapstructure:"request_limit" validate:"required,gt=0"`
	WindowSeconds int `mapstructure:"window_seconds" validate:"required,gt=0"`
}
