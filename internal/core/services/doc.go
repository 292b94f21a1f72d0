// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The manifest and validation pipelines are sequential and synchronous.
// Every directory is passed in explicitly; nothing is read from
// process-wide state except the OpenTelemetry providers.
package services
