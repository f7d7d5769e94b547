// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - Manifest: TOML manifest listing the files a batch run synchronises
package file
