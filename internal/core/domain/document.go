package domain

import "time"

// Document is an immutable snapshot of a newsletter draft under analysis.
// FormattedContent, when present, must strip down to PlainText
// (whitespace-normalized); the reconciler fails closed when it does not.
type Document struct {
	PlainText        string `json:"plain_text"`
	FormattedContent string `json:"formatted_content,omitempty"`
}

// HasFormatted reports whether the document carries rich-text content.
func (d *Document) HasFormatted() bool {
	return d.FormattedContent != ""
}

// Sentence is one segmented sentence of a document.
// Start and End are byte offsets into the document's plain text;
// sentences are contiguous, non-overlapping and ordered by Index.
type Sentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Len returns the sentence length in bytes.
func (s *Sentence) Len() int {
	return s.End - s.Start
}

// Analysis is a persisted grading pass over one document snapshot.
// It links the graded document to its (optional) improved draft so the
// grading view and the improvement view share state.
type Analysis struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Document  Document        `json:"document"`
	Result    *AnalysisResult `json:"result,omitempty"`
	DraftID   string          `json:"draft_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
