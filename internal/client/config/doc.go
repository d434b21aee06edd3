// Package config loads runtime configuration for the ScapeGIS CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. A dotenv file (-env-file, or ./.env) and the SCAPEGIS_* environment.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the identity API
//	-d string   path of the local SQLite database
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-e string   environment: local, dev or prod
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api/v1",
//	  "db_path": "scapegis.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "15s",
//	  "verify_throttle": "1s",
//	  "magic_link_redirect_delay": "1s",
//	  "env": "local",
//	  "google_client_id": "",
//	  "google_client_secret": ""
//	}
package config
