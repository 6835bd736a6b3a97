// Package config provides configuration loading, merging, and validation
// facilities for the expense ledger.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// Fields still empty after merging receive the package defaults. The main
// entry point is [GetStructuredConfig].
package config
