// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DocumentStore: reads and writes whole text files (required)
//   - ConfigStore: the optional TOML manifest listing files to synchronise
//   - ChangeWatcher: notifies when a watched file changes (watch mode only)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
