// Package domain defines the core entities for srcdup.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DelimiterPair: the open and close markers bounding a synchronised span
//   - Span: a byte range of a document covered by one tagged region
//   - SyncResult: the outcome of synchronising one file
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
