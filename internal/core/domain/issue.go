package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// IssueKind identifies a writing-quality issue category.
// The set is closed: marker tags on the wire use exactly these values.
type IssueKind string

const (
	IssueSpamWords            IssueKind = "spam_words"
	IssueGrammarSpelling      IssueKind = "grammar_spelling"
	IssueClaimWithoutEvidence IssueKind = "claim_without_evidence"
	IssueHardToRead           IssueKind = "hard_to_read"
	IssueFluff                IssueKind = "fluff"
	IssueHedging              IssueKind = "hedging"
	IssueVagueDate            IssueKind = "vague_date"
	IssueVagueNumber          IssueKind = "vague_number"
	IssueEmojiExcess          IssueKind = "emoji_excess"
	IssueCTA                  IssueKind = "cta"
)

// AllIssueKinds lists every kind in registration order.
// This order doubles as the deterministic tiebreak when two spans of equal
// severity claim the same range.
var AllIssueKinds = []IssueKind{
	IssueSpamWords,
	IssueGrammarSpelling,
	IssueClaimWithoutEvidence,
	IssueHardToRead,
	IssueFluff,
	IssueHedging,
	IssueVagueDate,
	IssueVagueNumber,
	IssueEmojiExcess,
	IssueCTA,
}

// Valid reports whether k is a member of the closed kind set.
func (k IssueKind) Valid() bool {
	for _, known := range AllIssueKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Severity is a fixed display tier per kind. It orders issues in the UI and
// breaks identical-range conflicts; it never changes detection logic.
type Severity string

const (
	SeverityHigh          Severity = "high"
	SeverityMedium        Severity = "medium"
	SeverityLow           Severity = "low"
	SeverityInformational Severity = "informational"
)

// Rank returns a comparable weight (higher = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

var kindSeverity = map[IssueKind]Severity{
	IssueSpamWords:            SeverityHigh,
	IssueGrammarSpelling:      SeverityHigh,
	IssueClaimWithoutEvidence: SeverityMedium,
	IssueHardToRead:           SeverityMedium,
	IssueEmojiExcess:          SeverityMedium,
	IssueFluff:                SeverityLow,
	IssueHedging:              SeverityLow,
	IssueVagueDate:            SeverityLow,
	IssueVagueNumber:          SeverityLow,
	IssueCTA:                  SeverityInformational,
}

// SeverityOf returns the fixed severity tier for a kind.
func SeverityOf(kind IssueKind) Severity {
	if s, ok := kindSeverity[kind]; ok {
		return s
	}
	return SeverityInformational
}

// Finding is one rule's raw output before merging.
// Start and End are byte offsets relative to the sentence's own text.
// Document-level findings use SentenceIndex -1 with document offsets.
type Finding struct {
	Kind          IssueKind `json:"kind"`
	SentenceIndex int       `json:"sentence_index"`
	Start         int       `json:"start"`
	End           int       `json:"end"`
	Detail        Detail    `json:"detail,omitempty"`
}

// findingJSON mirrors Finding with the detail kept raw, so it can be
// decoded into the variant the kind dictates.
type findingJSON struct {
	Kind          IssueKind       `json:"kind"`
	SentenceIndex int             `json:"sentence_index"`
	Start         int             `json:"start"`
	End           int             `json:"end"`
	Detail        json.RawMessage `json:"detail,omitempty"`
}

// UnmarshalJSON restores the kind-specific Detail variant. Without this
// the Detail interface field cannot be decoded, and stored findings would
// not survive a round trip through the analysis store or cache.
func (f *Finding) UnmarshalJSON(data []byte) error {
	var raw findingJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Kind = raw.Kind
	f.SentenceIndex = raw.SentenceIndex
	f.Start = raw.Start
	f.End = raw.End
	f.Detail = nil

	if len(raw.Detail) == 0 || bytes.Equal(raw.Detail, []byte("null")) {
		return nil
	}
	detail, err := unmarshalDetail(raw.Kind, raw.Detail)
	if err != nil {
		return err
	}
	f.Detail = detail
	return nil
}

// unmarshalDetail decodes the detail payload into the value variant the
// rules emit for the given kind.
func unmarshalDetail(kind IssueKind, data []byte) (Detail, error) {
	switch kind {
	case IssueSpamWords:
		var d SpamWordsDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode %s detail: %w", kind, err)
		}
		return d, nil
	case IssueGrammarSpelling:
		var d GrammarDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode %s detail: %w", kind, err)
		}
		return d, nil
	case IssueClaimWithoutEvidence:
		var d ClaimDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode %s detail: %w", kind, err)
		}
		return d, nil
	case IssueHardToRead:
		var d HardToReadDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode %s detail: %w", kind, err)
		}
		return d, nil
	case IssueFluff:
		var d FluffDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode %s detail: %w", kind, err)
		}
		return d, nil
	case IssueHedging:
		var d HedgingDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode %s detail: %w", kind, err)
		}
		return d, nil
	case IssueVagueDate, IssueVagueNumber:
		var d VagueDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode %s detail: %w", kind, err)
		}
		return d, nil
	case IssueEmojiExcess:
		var d EmojiExcessDetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode %s detail: %w", kind, err)
		}
		return d, nil
	case IssueCTA:
		var d CTADetail
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("decode %s detail: %w", kind, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown issue kind %q", kind)
	}
}

// Detail carries rule-specific evidence. Each kind has its own variant so
// consumers know statically what a rule reports.
type Detail interface {
	isDetail()
}

// SpamWordsDetail lists the spam-trigger phrases matched in the span.
type SpamWordsDetail struct {
	Phrases []string `json:"phrases"`
}

// GrammarDetail reports which grammar/spelling heuristic fired.
type GrammarDetail struct {
	Misspellings []string `json:"misspellings,omitempty"`
	RepeatedWord string   `json:"repeated_word,omitempty"`
	Heuristic    string   `json:"heuristic,omitempty"`
}

// ClaimDetail reports the superlative/quantifier that lacked evidence.
type ClaimDetail struct {
	Trigger string `json:"trigger"`
}

// HardToReadDetail reports why a sentence was flagged.
type HardToReadDetail struct {
	WordCount   int `json:"word_count"`
	ClauseCount int `json:"clause_count"`
	Threshold   int `json:"threshold"`
}

// FluffDetail reports the filler phrase matched.
type FluffDetail struct {
	Phrase string `json:"phrase"`
}

// HedgingDetail reports the hedge word matched.
type HedgingDetail struct {
	Word string `json:"word"`
}

// VagueDetail reports the vague date or quantity phrase matched.
type VagueDetail struct {
	Phrase string `json:"phrase"`
}

// EmojiExcessDetail reports the emoji count against the threshold.
type EmojiExcessDetail struct {
	Count     int `json:"count"`
	Threshold int `json:"threshold"`
}

// CTADetail reports the action verb that led the sentence.
type CTADetail struct {
	Verb string `json:"verb"`
}

func (SpamWordsDetail) isDetail()   {}
func (GrammarDetail) isDetail()     {}
func (ClaimDetail) isDetail()       {}
func (HardToReadDetail) isDetail()  {}
func (FluffDetail) isDetail()       {}
func (HedgingDetail) isDetail()     {}
func (VagueDetail) isDetail()       {}
func (EmojiExcessDetail) isDetail() {}
func (CTADetail) isDetail()         {}

// RuleOptions carries the per-rule thresholds a caller may override.
// Zero values mean "use the shipped default"; lexicons are rule-set data,
// not request options.
type RuleOptions struct {
	// HardToReadWordLimit is the word count above which a sentence is
	// flagged hard to read. Default 25.
	HardToReadWordLimit int `json:"hard_to_read_word_limit,omitempty"`

	// EmojiLimit is the emoji count per sentence above which the run is
	// flagged. Default 2.
	EmojiLimit int `json:"emoji_limit,omitempty"`

	// MinSpanLength is the minimum visible (rune) length of a highlight
	// span. Default 3.
	MinSpanLength int `json:"min_span_length,omitempty"`
}

// Defaults for RuleOptions fields.
const (
	DefaultHardToReadWordLimit = 25
	DefaultEmojiLimit          = 2
	DefaultMinSpanLength       = 3
)

// Normalized returns a copy with zero fields replaced by defaults.
func (o RuleOptions) Normalized() RuleOptions {
	if o.HardToReadWordLimit <= 0 {
		o.HardToReadWordLimit = DefaultHardToReadWordLimit
	}
	if o.EmojiLimit <= 0 {
		o.EmojiLimit = DefaultEmojiLimit
	}
	if o.MinSpanLength <= 0 {
		o.MinSpanLength = DefaultMinSpanLength
	}
	return o
}
