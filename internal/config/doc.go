// Package config loads and validates spritepack settings from a JSON file.
//
// Command-line flags are applied on top of a loaded Config by the caller.
package config
