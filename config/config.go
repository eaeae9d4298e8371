// Package config loads application settings from defaults overlaid with
// environment variables.
package config

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// App is the resolved application configuration.
type App struct {
	SecretKey                string `koanf:"secret_key"`
	AccessTokenExpireSeconds int    `koanf:"access_token_expire_seconds"`
	JWTAlgorithm             string `koanf:"jwt_algorithm"`
	JWTAudience              string `koanf:"jwt_audience"`
	JWTTokenPrefix           string `koanf:"jwt_token_prefix"`
	HTTPAddr                 string `koanf:"http_addr"`
	DBDSN                    string `koanf:"db_dsn"`
	Environment              string `koanf:"environment"`
}

// Load resolves configuration: baked-in defaults first, then environment
// variables. SECRET_KEY has no default and must come from the environment.
func Load() (*App, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"access_token_expire_seconds": 3600,
		"jwt_algorithm":               "HS256",
		"jwt_audience":                "phresh:auth",
		"jwt_token_prefix":            "Bearer",
		"http_addr":                   ":8572",
		"db_dsn":                      "file::memory:?cache=shared",
		"environment":                 "development",
	}

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load default config")
	}

	if err := k.Load(env.Provider("", ".", normalizeEnvKey), nil); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load environment config")
	}

	app := &App{}
	if err := k.Unmarshal("", app); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to unmarshal config")
	}

	if err := app.Validate(); err != nil {
		return nil, err
	}

	return app, nil
}

// knownKeys filters the process environment down to the variables we own,
// so unrelated variables never leak into the config map.
var knownKeys = map[string]string{
	"SECRET_KEY":                  "secret_key",
	"ACCESS_TOKEN_EXPIRE_SECONDS": "access_token_expire_seconds",
	"JWT_ALGORITHM":               "jwt_algorithm",
	"JWT_AUDIENCE":                "jwt_audience",
	"JWT_TOKEN_PREFIX":            "jwt_token_prefix",
	"HTTP_ADDR":                   "http_addr",
	"DB_DSN":                      "db_dsn",
	"ENVIRONMENT":                 "environment",
}

func normalizeEnvKey(s string) string {
	key, ok := knownKeys[s]
	if !ok {
		return ""
	}
	return key
}

// Validate checks the invariants a process must not start without.
func (a *App) Validate() error {
	if a.SecretKey == "" {
		return goerrors.New("SECRET_KEY is required", goerrors.CategoryOperation).
			WithTextCode("MISSING_SECRET_KEY").
			WithCode(goerrors.CodeInternal)
	}

	if a.AccessTokenExpireSeconds <= 0 {
		return goerrors.New("ACCESS_TOKEN_EXPIRE_SECONDS must be positive", goerrors.CategoryOperation).
			WithTextCode("INVALID_TOKEN_EXPIRATION").
			WithCode(goerrors.CodeInternal)
	}

	return nil
}

// GetSigningKey implements auth.Config.
func (a *App) GetSigningKey() string {
	return a.SecretKey
}

// GetSigningMethod implements auth.Config.
func (a *App) GetSigningMethod() string {
	return a.JWTAlgorithm
}

// GetTokenExpiration implements auth.Config, in seconds.
func (a *App) GetTokenExpiration() int {
	return a.AccessTokenExpireSeconds
}

// GetAudience implements auth.Config.
func (a *App) GetAudience() []string {
	return []string{a.JWTAudience}
}

// GetTokenPrefix implements auth.Config.
func (a *App) GetTokenPrefix() string {
	return a.JWTTokenPrefix
}

// GetCookieSecure implements auth.Config. Cookies are marked Secure
// everywhere except local development.
func (a *App) GetCookieSecure() bool {
	return a.Environment == "production"
}

// Redacted returns a copy safe for logging.
func (a *App) Redacted() App {
	out := *a
	if out.SecretKey != "" {
		out.SecretKey = "[redacted]"
	}
	return out
}
