// Package app wires the application together: configuration, logging,
// services, the Chi router with its middleware chain, and the HTTP server
// lifecycle including graceful shutdown.
package app
