package config

import "github.com/caarlos0/env/v6"

// parseEnv overlays the SMHOME_* client variables onto cfg. Unset
// variables keep the current value.
func parseEnv(cfg *Config) error {
	return env.Parse(cfg)
}
