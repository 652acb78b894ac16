package domain

// AnnotatedSpan is a merged, conflict-resolved finding in document-global
// plain-text byte offsets. After injection no two spans partially overlap:
// any pair is disjoint, nested, or was collapsed to one.
type AnnotatedSpan struct {
	Kind  IssueKind `json:"kind"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// Contains reports whether the span fully contains other.
func (s AnnotatedSpan) Contains(other AnnotatedSpan) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether the spans share at least one byte.
func (s AnnotatedSpan) Overlaps(other AnnotatedSpan) bool {
	return s.Start < other.End && other.Start < s.End
}

// HighlightSpan is an annotated span translated into byte offsets of the
// formatted (HTML-bearing) content, ready for rendering.
type HighlightSpan struct {
	Kind             IssueKind `json:"kind"`
	StartInFormatted int       `json:"start_in_formatted"`
	EndInFormatted   int       `json:"end_in_formatted"`
}

// SentenceIssues summarises all issues found in one sentence.
type SentenceIssues struct {
	SentenceText string      `json:"sentence_text"`
	Start        int         `json:"start"`
	End          int         `json:"end"`
	Kinds        []IssueKind `json:"kinds"`
	Findings     []Finding   `json:"findings"`
}

// MalformedMarkerReport records a dangling or mismatched marker whose text
// was treated as plain, unhighlighted content.
type MalformedMarkerReport struct {
	Kind   IssueKind `json:"kind"`
	Offset int       `json:"offset"`
	Reason string    `json:"reason"`
}

// DesyncReport records the single point where the plain and formatted
// cursors diverged; no highlights are emitted past Offset.
type DesyncReport struct {
	PlainOffset     int    `json:"plain_offset"`
	FormattedOffset int    `json:"formatted_offset"`
	Reason          string `json:"reason"`
}

// AnalysisResult is the output of one annotation pass.
type AnalysisResult struct {
	AnnotatedText string          `json:"annotated_text"`
	Spans         []AnnotatedSpan `json:"spans"`
	Highlights    []HighlightSpan `json:"highlights,omitempty"`

	DocumentLevel []Finding        `json:"document_level"`
	PerSentence   []SentenceIssues `json:"per_sentence"`

	MalformedMarkers []MalformedMarkerReport `json:"malformed_markers,omitempty"`
	Desync           *DesyncReport           `json:"desync,omitempty"`
}

// IssueCount returns the total number of merged spans.
func (r *AnalysisResult) IssueCount() int {
	return len(r.Spans)
}
