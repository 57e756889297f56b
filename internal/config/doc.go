// Package config provides configuration loading, merging, and validation
// facilities for the service.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or TOML config file
//
// Settings left unset by every source fall back to the Default* constants.
// The main entry point is [GetStructuredConfig].
package config
