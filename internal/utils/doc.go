// Package utils provides shared infrastructure for the ordnung commands:
// zap logger construction, Viper-backed configuration loading, and writer helpers.
package utils
