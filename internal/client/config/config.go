package config

import "time"

// Config holds runtime settings for the ScapeGIS CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST identity API, including the version prefix.
//   - DBPath: SQLite file that keeps tokens and the workspace id between runs.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - RequestTimeout: per-request HTTP timeout.
//   - VerifyThrottle: minimum gap between two code verification attempts.
//   - MagicLinkRedirectDelay: pause before leaving the admin verify screen.
//   - Env: logger flavour, one of local, dev, prod.
//   - GoogleClientID / GoogleClientSecret: OAuth client used by the google command.
type Config struct {
	APIBaseURL             string        `env:"SCAPEGIS_API_BASE_URL"`
	DBPath                 string        `env:"SCAPEGIS_DB_PATH"`
	OnlineCheckInterval    time.Duration `env:"SCAPEGIS_ONLINE_CHECK_INTERVAL"`
	RequestTimeout         time.Duration `env:"SCAPEGIS_REQUEST_TIMEOUT"`
	VerifyThrottle         time.Duration `env:"SCAPEGIS_VERIFY_THROTTLE"`
	MagicLinkRedirectDelay time.Duration `env:"SCAPEGIS_MAGIC_LINK_REDIRECT_DELAY"`
	Env                    string        `env:"SCAPEGIS_ENV"`
	GoogleClientID         string        `env:"SCAPEGIS_GOOGLE_CLIENT_ID"`
	GoogleClientSecret     string        `env:"SCAPEGIS_GOOGLE_CLIENT_SECRET"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api/v1"
	c.DBPath = "scapegis.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.VerifyThrottle = time.Second
	c.MagicLinkRedirectDelay = time.Second
	c.Env = "local"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
