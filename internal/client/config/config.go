package config

import (
	"time"

	"github.com/dmitrijs2005/userreg/internal/timex"
)

const DefaultAPIBaseURL = "https://rest-api-production-7e07.up.railway.app/"

// Config holds runtime settings for the userreg console.
//
// Fields:
//   - APIBaseURL: root of the user REST API.
//   - DatabasePath: SQLite file backing cookies, local and session storage.
//   - LogFile, LogLevel: where and how verbosely the client logs.
//   - HistoryFile: readline history; empty disables it.
//   - TokenTTL: lifetime of the token cookie.
//   - RequestTimeout: per-request HTTP timeout.
//   - OnlineCheckInterval: how often the client checks API reachability.
type Config struct {
	APIBaseURL          string
	DatabasePath        string
	LogFile             string
	LogLevel            string
	HistoryFile         string
	TokenTTL            time.Duration
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DatabasePath = "userreg.db"
	c.LogFile = "userreg.log"
	c.LogLevel = "info"
	c.HistoryFile = ".userreg_history"
	c.TokenTTL = 7 * timex.Day
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 10 * time.Second
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
