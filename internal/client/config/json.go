package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/userreg/internal/flagx"
	"github.com/dmitrijs2005/userreg/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept strings like "30s" or "7d" as well as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	DatabasePath        string         `json:"database_path"`
	LogFile             string         `json:"log_file"`
	LogLevel            string         `json:"log_level"`
	HistoryFile         *string        `json:"history_file"`
	TokenTTL            timex.Duration `json:"token_ttl"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Fields missing from the file keep their current value;
// history_file may be set to "" to disable history. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.HistoryFile != nil {
		cfg.HistoryFile = *jc.HistoryFile
	}
	setDuration(&cfg.TokenTTL, jc.TokenTTL.Duration)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout.Duration)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval.Duration)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
