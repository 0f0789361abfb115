// Package handlers implements the business logic for CLI commands.
//
// Each handler loads the configuration, builds the AWS query adapter and the
// reconciler, and drives one of the presentation surfaces: the dashboard,
// a one-shot report or the HTTP server.
package handlers
