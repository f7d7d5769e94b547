// Package disk provides the afero-backed DocumentStore used by the CLI.
//
// Writes go through a temporary file in the target's directory and are
// renamed over the original, so a failed write never leaves a truncated
// source file behind.
package disk
