package config

import (
	"encoding/json"
	"os"

	"github.com/vilarbucks/vilarbucks/internal/flagx"
	"github.com/vilarbucks/vilarbucks/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Intervals use
// timex.Duration so they can be written as "3s" or as nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	DBPath              string         `json:"db_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RefreshInterval     timex.Duration `json:"refresh_interval"`
	HTTPTimeout         timex.Duration `json:"http_timeout"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c or -config. Fields
// absent from the file (zero values) leave cfg untouched. Read or decode
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RefreshInterval.Duration != 0 {
		cfg.RefreshInterval = jc.RefreshInterval.Duration
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
