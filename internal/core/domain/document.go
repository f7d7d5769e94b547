package domain

// DelimiterPair identifies the boundaries of a synchronisable span.
type DelimiterPair struct {
	Open  string
	Close string
}

// DefaultDelimiters is the fixed pair used by the srcdup CLI.
var DefaultDelimiters = DelimiterPair{
	Open:  "// <common_code>",
	Close: "// </common_code>",
}

// Valid reports whether both markers are non-empty.
func (p DelimiterPair) Valid() bool {
	return p.Open != "" && p.Close != ""
}

// Span is a tagged region of a document.
// Start and End are byte offsets; End is exclusive and the range
// includes both markers.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the span's text within doc.
func (s Span) Text(doc string) string {
	return doc[s.Start:s.End]
}

// SyncOptions controls how a file is synchronised.
type SyncOptions struct {
	// DryRun computes the result without writing it back.
	DryRun bool
}

// SyncResult describes the outcome of synchronising one file.
type SyncResult struct {
	// Path is the file that was processed.
	Path string

	// Spans is the number of tagged spans found.
	Spans int

	// Rewritten is the number of spans whose content differed
	// from the canonical block.
	Rewritten int

	// Written is true if the file was written back to storage.
	Written bool

	// Before is the document as read.
	Before string

	// After is the synchronised document.
	After string
}

// Changed reports whether synchronisation altered the document.
func (r *SyncResult) Changed() bool {
	return r.Before != r.After
}
