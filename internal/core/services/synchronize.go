package services

import (
	"strings"

	"github.com/custodia-labs/srcdup/internal/core/domain"
)

// LocateSpans returns every tagged span in doc in document order.
//
// Each span runs from an open marker to the nearest close marker after
// it. Spans never overlap. Scanning stops at the first open marker that
// has no close marker following it.
func LocateSpans(doc string, pair domain.DelimiterPair) []domain.Span {
	if !pair.Valid() {
		return nil
	}

	var spans []domain.Span
	pos := 0
	for pos < len(doc) {
		open := strings.Index(doc[pos:], pair.Open)
		if open < 0 {
			break
		}
		start := pos + open
		body := start + len(pair.Open)

		closing := strings.Index(doc[body:], pair.Close)
		if closing < 0 {
			break
		}
		end := body + closing + len(pair.Close)

		spans = append(spans, domain.Span{Start: start, End: end})
		pos = end
	}
	return spans
}

// LocateCanonical returns the text of the first tagged span, markers included.
func LocateCanonical(doc string, pair domain.DelimiterPair) (string, bool) {
	spans := LocateSpans(doc, pair)
	if len(spans) == 0 {
		return "", false
	}
	return spans[0].Text(doc), true
}

// SynchronizeSpans rewrites every tagged span in doc with the first one.
// It returns the new document, the spans located in the input and the
// number of spans whose text differed from the canonical block.
func SynchronizeSpans(doc string, pair domain.DelimiterPair) (string, []domain.Span, int) {
	spans := LocateSpans(doc, pair)
	if len(spans) < 2 {
		return doc, spans, 0
	}

	canonical := spans[0].Text(doc)
	rewritten := 0

	// Splice the canonical text into each span's byte range. Copying by
	// range keeps the text verbatim; nothing is interpreted as a pattern.
	var b strings.Builder
	b.Grow(len(doc) + (len(spans)-1)*len(canonical))
	prev := 0
	for _, span := range spans {
		if span.Text(doc) != canonical {
			rewritten++
		}
		b.WriteString(doc[prev:span.Start])
		b.WriteString(canonical)
		prev = span.End
	}
	b.WriteString(doc[prev:])

	if rewritten == 0 {
		return doc, spans, 0
	}
	return b.String(), spans, rewritten
}

// Synchronize returns doc with every span bounded by openMarker and
// closeMarker replaced by the first such span. Documents with fewer than
// two spans are returned unchanged.
func Synchronize(doc, openMarker, closeMarker string) string {
	out, _, _ := SynchronizeSpans(doc, domain.DelimiterPair{Open: openMarker, Close: closeMarker})
	return out
}
