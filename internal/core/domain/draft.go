package domain

import "time"

// DraftPair is one original/replacement span pair as emitted by the rewrite
// collaborator, in emission order.
type DraftPair struct {
	OriginalSpanText string `json:"original_span_text"`
	ReplacementText  string `json:"replacement_text"`
	Ordinal          int    `json:"ordinal"`
}

// MatchedSpan is a DraftPair resolved to a unique, order-respecting
// location in the original document (byte offsets).
type MatchedSpan struct {
	Pair  DraftPair `json:"pair"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// DiffSegmentKind classifies a diff segment.
type DiffSegmentKind string

const (
	DiffEqual   DiffSegmentKind = "equal"
	DiffRemoved DiffSegmentKind = "removed"
	DiffAdded   DiffSegmentKind = "added"
)

// DiffSegment is one piece of a before/after comparison column.
// PairID links a removed segment to its added counterpart for
// hover-synchronization; equal segments carry no PairID.
type DiffSegment struct {
	ID     string          `json:"id"`
	Kind   DiffSegmentKind `json:"kind"`
	Text   string          `json:"text"`
	PairID string          `json:"pair_id,omitempty"`
}

// DiffColumns holds the two ordered segment lists of the comparison view.
type DiffColumns struct {
	Original []DiffSegment `json:"original"`
	Improved []DiffSegment `json:"improved"`
}

// AlignmentMiss records a pair whose original text could not be located
// strictly after the previous match. The pair is skipped, not fatal.
type AlignmentMiss struct {
	Ordinal          int    `json:"ordinal"`
	OriginalSpanText string `json:"original_span_text"`
}

// DraftStatus tracks the lifecycle of a rewrite pass.
type DraftStatus string

const (
	DraftStatusPending   DraftStatus = "pending"
	DraftStatusRunning   DraftStatus = "running"
	DraftStatusCompleted DraftStatus = "completed"
	DraftStatusFailed    DraftStatus = "failed"
)

// Draft is a persisted rewrite pass over one document snapshot.
type Draft struct {
	ID         string      `json:"id"`
	AnalysisID string      `json:"analysis_id"`
	UserID     string      `json:"user_id"`
	Status     DraftStatus `json:"status"`

	// Audience/goal context forwarded to the rewrite collaborator.
	Audience string `json:"audience,omitempty"`
	Goal     string `json:"goal,omitempty"`

	// RawMarkup is the collaborator's paired-span output, kept verbatim.
	RawMarkup string `json:"raw_markup,omitempty"`

	Columns *DiffColumns    `json:"columns,omitempty"`
	Misses  []AlignmentMiss `json:"misses,omitempty"`
	Error   string          `json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HolisticScore is the structured score object the collaborator returns
// for holistic grading. The core parses it, never produces it.
type HolisticScore struct {
	Overall     int    `json:"overall"`
	Clarity     int    `json:"clarity"`
	Engagement  int    `json:"engagement"`
	Readability int    `json:"readability"`
	Summary     string `json:"summary,omitempty"`
}
