// Package config loads runtime configuration for the todokeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config (or $CONFIG).
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the HTTP API
//	-f string   session database file
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:3000",
//	  "session_db_path": "todokeeper.db",
//	  "request_timeout": "5s"
//	}
package config
