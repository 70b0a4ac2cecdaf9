package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/userreg/internal/flagx"
	"github.com/dmitrijs2005/userreg/internal/timex"
)

const (
	EnvAPIURL        = "USERREG_API_URL"
	EnvDatabase      = "USERREG_DB"
	EnvTokenTTL      = "USERREG_TOKEN_TTL"
	EnvLogLevel      = "USERREG_LOG_LEVEL"
	EnvLogFile       = "USERREG_LOG_FILE"
	EnvHistoryFile   = "USERREG_HISTORY_FILE"
	EnvCheckInterval = "USERREG_CHECK_INTERVAL"
)

// parseEnv loads a dotenv file into the process environment and overlays
// Config with the USERREG_* variables. The file is the one named by -e or
// -env, or ./.env when present. Variables already set in the environment
// are not overridden by the file. Panics on unreadable files and malformed
// durations.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookupString(EnvAPIURL, &cfg.APIBaseURL)
	lookupString(EnvDatabase, &cfg.DatabasePath)
	lookupString(EnvLogLevel, &cfg.LogLevel)
	lookupString(EnvLogFile, &cfg.LogFile)
	if v, ok := os.LookupEnv(EnvHistoryFile); ok {
		cfg.HistoryFile = v
	}
	lookupDuration(EnvTokenTTL, &cfg.TokenTTL)
	lookupDuration(EnvCheckInterval, &cfg.OnlineCheckInterval)
}

func lookupString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// lookupDuration accepts Go durations, a "d" day suffix, or a bare number
// of seconds.
func lookupDuration(key string, dst *time.Duration) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(n) * time.Second
		return
	}
	d, err := timex.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
