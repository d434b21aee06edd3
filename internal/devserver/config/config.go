// Package config handles configuration for the development backend,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the development identity backend.
//
// Fields:
//   - Addr: HTTP bind address.
//   - BasePath: prefix every route is mounted under, matching the client's base URL.
//   - JWTSecret: HMAC secret for signing access tokens (HS256). Do not use the default outside a laptop.
//   - AccessTTL / RefreshTTL: token lifetimes.
//   - CodeTTL / LinkTTL: validity of verification codes and admin magic links.
//   - SendInterval / SendBurst: per-email limit on code and link sends.
//   - AdminDomain: emails under this domain are admin accounts.
//   - LinkBaseURL: page the magic link points at; the token is appended as ?token=.
//   - GoogleClientID: expected audience of Google ID tokens; empty skips the check.
//   - Env: logger flavour, one of local, dev, prod.
type Config struct {
	Addr           string        `env:"DEVSERVER_ADDR"`
	BasePath       string        `env:"DEVSERVER_BASE_PATH"`
	JWTSecret      string        `env:"DEVSERVER_JWT_SECRET"`
	AccessTTL      time.Duration `env:"DEVSERVER_ACCESS_TTL"`
	RefreshTTL     time.Duration `env:"DEVSERVER_REFRESH_TTL"`
	CodeTTL        time.Duration `env:"DEVSERVER_CODE_TTL"`
	LinkTTL        time.Duration `env:"DEVSERVER_LINK_TTL"`
	SendInterval   time.Duration `env:"DEVSERVER_SEND_INTERVAL"`
	SendBurst      int           `env:"DEVSERVER_SEND_BURST"`
	AdminDomain    string        `env:"DEVSERVER_ADMIN_DOMAIN"`
	LinkBaseURL    string        `env:"DEVSERVER_LINK_BASE_URL"`
	GoogleClientID string        `env:"DEVSERVER_GOOGLE_CLIENT_ID"`
	Env            string        `env:"DEVSERVER_ENV"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.BasePath = "/api/v1"
	c.JWTSecret = "secretKey"
	c.AccessTTL = 15 * time.Minute
	c.RefreshTTL = 168 * time.Hour
	c.CodeTTL = 10 * time.Minute
	c.LinkTTL = 10 * time.Minute
	c.SendInterval = 20 * time.Second
	c.SendBurst = 3
	c.AdminDomain = "scapegis.com"
	c.LinkBaseURL = "http://localhost:3000/admin/verify"
	c.Env = "local"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	config := &Config{}
	config.LoadDefaults()
	parseJson(config)
	parseEnv(config)
	parseFlags(config)
	return config
}
