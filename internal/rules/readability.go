package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// hardToReadRule flags sentences whose word or clause count exceeds the
// configured limit. The finding covers the whole sentence.
type hardToReadRule struct {
	wordLimit   int
	clauseLimit int
}

// NewHardToReadRule creates the readability rule with the given word limit.
func NewHardToReadRule(wordLimit int) Rule {
	if wordLimit <= 0 {
		wordLimit = domain.DefaultHardToReadWordLimit
	}
	return &hardToReadRule{
		wordLimit:   wordLimit,
		clauseLimit: 4,
	}
}

func (r *hardToReadRule) Kind() domain.IssueKind {
	return domain.IssueHardToRead
}

func (r *hardToReadRule) EvaluateSentence(s domain.Sentence) []domain.Finding {
	words := len(strings.Fields(s.Text))
	clauses := clauseCount(s.Text)

	if words <= r.wordLimit && clauses <= r.clauseLimit {
		return nil
	}

	return []domain.Finding{{
		Kind:  domain.IssueHardToRead,
		Start: 0,
		End:   len(s.Text),
		Detail: domain.HardToReadDetail{
			WordCount:   words,
			ClauseCount: clauses,
			Threshold:   r.wordLimit,
		},
	}}
}

// clauseCount approximates clauses as one plus the comma/semicolon/dash
// separators in the sentence.
func clauseCount(text string) int {
	count := 1
	for _, r := range text {
		switch r {
		case ',', ';':
			count++
		}
	}
	count += strings.Count(text, " - ")
	count += strings.Count(text, "—") // em dash
	return count
}

// emojiExcessRule flags a sentence whose emoji count exceeds the limit.
// One finding covers the run from the first emoji to the last, never one
// finding per emoji.
type emojiExcessRule struct {
	limit int
}

// NewEmojiExcessRule creates the emoji rule with the given per-sentence limit.
func NewEmojiExcessRule(limit int) Rule {
	if limit <= 0 {
		limit = domain.DefaultEmojiLimit
	}
	return &emojiExcessRule{limit: limit}
}

func (r *emojiExcessRule) Kind() domain.IssueKind {
	return domain.IssueEmojiExcess
}

func (r *emojiExcessRule) EvaluateSentence(s domain.Sentence) []domain.Finding {
	count := 0
	first := -1
	last := -1

	for i, ru := range s.Text {
		if !isEmoji(ru) {
			continue
		}
		count++
		if first == -1 {
			first = i
		}
		last = i + utf8.RuneLen(ru)
	}

	if count <= r.limit {
		return nil
	}

	return []domain.Finding{{
		Kind:  domain.IssueEmojiExcess,
		Start: first,
		End:   last,
		Detail: domain.EmojiExcessDetail{
			Count:     count,
			Threshold: r.limit,
		},
	}}
}

// emojiRanges covers the common emoji blocks. Variation selectors and
// zero-width joiners are not counted on their own.
var emojiRanges = [][2]rune{
	{0x1F1E6, 0x1F1FF}, // regional indicators
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport & map
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA70, 0x1FAFF}, // extended-A
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2700, 0x27BF},   // dingbats
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}
