// Package config loads the application configuration from the process
// environment, with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig is the immutable application configuration. Build it once
// at startup and hand it to components at construction.
type AppConfig struct {
	Auth        Auth
	Persistence Persistence
	Server      Server
}

// Auth holds the token settings
type Auth struct {
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenExpiration time.Duration
	TokenLookup     string
	AuthScheme      string
	Issuer          string
}

// Persistence holds the database settings
type Persistence struct {
	DSN                   string
	Debug                 bool
	Seed                  bool
	PingTimeoutExpression string
}

// Server holds the HTTP listener settings
type Server struct {
	Addr string
}

// New reads the environment and builds the configuration. A missing
// JWT_SECRET is a hard error so a server can never start with a
// guessable signing key.
func New() (*AppConfig, error) {
	// best effort, the process env wins over the file
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET missing")
	}

	expiresIn := 168 * time.Hour
	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		dur, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRES_IN %q: %w", raw, err)
		}
		expiresIn = dur
	}

	cfg := &AppConfig{
		Auth: Auth{
			SigningKey:      secret,
			SigningMethod:   "HS256",
			ContextKey:      "user",
			TokenExpiration: expiresIn,
			TokenLookup:     "header:Authorization",
			AuthScheme:      "Bearer",
			Issuer:          os.Getenv("JWT_ISSUER"),
		},
		Persistence: Persistence{
			DSN:                   envOrDefault("DATABASE_DSN", "file:shop.db?cache=shared&_pragma=foreign_keys(1)"),
			Debug:                 os.Getenv("DATABASE_DEBUG") == "true",
			Seed:                  os.Getenv("DATABASE_SEED") == "true",
			PingTimeoutExpression: envOrDefault("DATABASE_PING_TIMEOUT", "5s"),
		},
		Server: Server{
			Addr: envOrDefault("SERVER_ADDR", ":9080"),
		},
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *AppConfig) GetAuth() Auth {
	return c.Auth
}

func (c *AppConfig) GetPersistence() Persistence {
	return c.Persistence
}

func (c *AppConfig) GetServer() Server {
	return c.Server
}

func (a Auth) GetSigningKey() string {
	return a.SigningKey
}

func (a Auth) GetSigningMethod() string {
	return a.SigningMethod
}

func (a Auth) GetContextKey() string {
	return a.ContextKey
}

func (a Auth) GetTokenExpiration() time.Duration {
	return a.TokenExpiration
}

func (a Auth) GetTokenLookup() string {
	return a.TokenLookup
}

func (a Auth) GetAuthScheme() string {
	return a.AuthScheme
}

func (a Auth) GetIssuer() string {
	return a.Issuer
}

func (p Persistence) GetDSN() string {
	return p.DSN
}

func (p Persistence) GetDebug() bool {
	return p.Debug
}

func (p Persistence) GetSeed() bool {
	return p.Seed
}

func (p Persistence) GetPingTimeout() time.Duration {
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

func (s Server) GetAddr() string {
	return s.Addr
}
