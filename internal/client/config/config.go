package config

import "time"

// Config holds runtime settings for the SMHome CLI.
//
// Fields:
//   - ServerURL: base URL of the shop HTTP API.
//   - RequestTimeout: per-request timeout for API calls.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerURL           string        `env:"SMHOME_SERVER_URL"`
	RequestTimeout      time.Duration `env:"SMHOME_CLIENT_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"SMHOME_ONLINE_CHECK_INTERVAL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig builds a Config from defaults, the optional JSON file, SMHOME_*
// environment variables and command-line flags, in that order of precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	parseFlags(cfg)
	return cfg
}
