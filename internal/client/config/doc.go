// Package config loads settings for the voteadmin CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file passed with --config.
//  3. Command-line flags bound by the cli package.
//
// The JSON loader uses timex.Duration, so the timeout may be "30s" or integer
// nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "30s"
//	}
package config
