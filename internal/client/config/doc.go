// Package config loads runtime configuration for the Vilarbucks CLI.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults ((*Config).LoadDefaults).
//  2. A .env file in the working directory, if any. It only fills variables
//     that are not already set.
//  3. VILARBUCKS_* environment variables, e.g. VILARBUCKS_API_URL or
//     VILARBUCKS_REFRESH_INTERVAL=5m.
//  4. A JSON file selected with -c or -config (schema below).
//  5. Flags: -a, -d, -i, -r, -t, -l (see parseFlags).
//
// Malformed input at any stage panics; the CLI treats it as fatal.
//
// # JSON schema
//
// Intervals accept Go duration strings or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.vilarbucks.example/api",
//	  "db_path": "/var/lib/vilarbucks/client.db",
//	  "online_check_interval": "3s",
//	  "refresh_interval": "5m",
//	  "http_timeout": "10s",
//	  "log_level": "debug"
//	}
package config
