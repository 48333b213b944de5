package config

import (
	"os"
	"strings"
)

const defaultPort = "3000"

type Config struct {
	Port           string
	AllowedOrigins []string
	GinMode        string
	Debug          bool
}

// Load reads the process environment. PORT defaults to 3000; an unset
// ALLOWED_ORIGINS means any origin, matching the original deployment.
func Load() Config {
	cfg := Config{
		Port:    os.Getenv("PORT"),
		GinMode: os.Getenv("GIN_MODE"),
		Debug:   os.Getenv("DEBUG") == "true",
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if origins, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok && origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg
}

// AllowAllOrigins reports whether no origin allow-list was configured.
func (c Config) AllowAllOrigins() bool {
	return len(c.AllowedOrigins) == 0
}
