package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer string // Issuer claim for tokens, also checked on verification

	RSAPublicKey  string // Optional: base64 DER (PKIX) public key; generated when unset
	RSAPrivateKey string // Optional: base64 DER (PKCS8) private key; generated when unset
	RSAKeyID      string // Optional: kid published in the JWKS; generated when unset

	AccessTokenTTL  time.Duration // Access token lifetime (default: 1h)
	RefreshTokenTTL time.Duration // Refresh token lifetime (default: 7d)

	CORSOrigins []string // Allowed CORS origins (default: *)

	DatabaseFile string // Path to the SQLite database file (default: ./identity.db)
	PepperFile   string // Path to the password hashing pepper file (default: ./pepper)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              getEnvOrDefault("IDENTITY_ISSUER", "identity-service"),
		RSAPublicKey:        os.Getenv("IDENTITY_RSA_PUBLIC_KEY"),
		RSAPrivateKey:       os.Getenv("IDENTITY_RSA_PRIVATE_KEY"),
		RSAKeyID:            os.Getenv("IDENTITY_RSA_KEY_ID"),
		AccessTokenTTL:      getEnvDurationOrDefault("IDENTITY_ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL:     getEnvDurationOrDefault("IDENTITY_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		DatabaseFile:        getEnvOrDefault("IDENTITY_DATABASE_FILE", "identity.db"),
		PepperFile:          getEnvOrDefault("IDENTITY_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	origins := getEnvOrDefault("IDENTITY_CORS_ORIGINS", "*")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
