// Package services implements the driving port interfaces.
// Services contain the core synchronisation logic and orchestrate
// calls to driven ports (adapters).
//
// The span locator and Synchronize are pure functions over strings;
// SyncService wraps them with document I/O.
package services
