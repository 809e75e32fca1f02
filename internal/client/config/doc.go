// Package config holds the CLI's connection settings.
//
// Defaults are overridden by an optional JSON file (-c or -config), which
// is overridden in turn by the -a (address) and -w (timeout in seconds)
// flags. The JSON keys are server_endpoint_addr and request_timeout; the
// timeout accepts "10s" style strings or integer nanoseconds.
package config
