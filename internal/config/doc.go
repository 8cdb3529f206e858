// Package config provides configuration loading, merging, and validation
// facilities for formdesk.
//
// Configuration is assembled from multiple sources in the following priority
// order (an earlier source wins over a later one):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the API server and
// [GetClientConfig] for the TUI client.
package config
