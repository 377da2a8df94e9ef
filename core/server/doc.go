// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines the
// listen port, the admin API key and the shutdown budget, and is embedded by
// core/config.
package server
