package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret required on admin routes (sync trigger, plan, integrity).
	ApiKey string `mapstructure:"api_key" default:""`
	// MetricsPath is where Prometheus metrics are served. Empty disables them.
	MetricsPath string `mapstructure:"metrics_path" default:"/metrics"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// Address returns the listen address for Fiber.
func (c Config) Address() string {
	port := strings.TrimPrefix(c.Port, ":")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

// AuthEnabled reports whether admin routes require an API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
