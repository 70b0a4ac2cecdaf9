// Package config loads runtime configuration for the userreg console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. A dotenv file (-e/-env, or ./.env) and the USERREG_* environment
//     variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the user API
//	-d string   path of the local SQLite database
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://api.example.org/",
//	  "database_path": "userreg.db",
//	  "log_file": "userreg.log",
//	  "log_level": "debug",
//	  "history_file": "",
//	  "token_ttl": "7d",
//	  "request_timeout": "15s",
//	  "online_check_interval": "10s"
//	}
//
// # Environment
//
//	USERREG_API_URL, USERREG_DB, USERREG_TOKEN_TTL, USERREG_LOG_LEVEL,
//	USERREG_LOG_FILE, USERREG_HISTORY_FILE, USERREG_CHECK_INTERVAL
package config
