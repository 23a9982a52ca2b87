// Package env keeps names of environment variables with special significance
// to tally.
package env

// Environment variables with special significance to tally.
const (
	HOME            = "HOME"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	XDG_DATA_HOME   = "XDG_DATA_HOME"
)
