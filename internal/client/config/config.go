package config

import "time"

// Config holds runtime settings for the Vilarbucks CLI.
//
// Env tags are relative to EnvPrefix, so APIBaseURL is read from
// VILARBUCKS_API_URL.
type Config struct {
	APIBaseURL          string        `env:"API_URL"`
	DBPath              string        `env:"DB_PATH"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	RefreshInterval     time.Duration `env:"REFRESH_INTERVAL"`
	HTTPTimeout         time.Duration `env:"HTTP_TIMEOUT"`
	LogLevel            string        `env:"LOG_LEVEL"`
	LogFormat           string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.DBPath = "vilarbucks.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RefreshInterval = 0
	c.HTTPTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config from defaults, then the .env file, the
// environment, an optional JSON file and finally command-line flags. Later
// sources take precedence. Malformed input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotenv(".env")
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
