package diffalign

import (
	"strings"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

const (
	oldOpen   = "<old_draft>"
	oldClose  = "</old_draft>"
	newOpen   = "<optimized_draft>"
	newClose  = "</optimized_draft>"
)

// ParsePairs extracts sequential old/optimized span pairs from rewrite
// markup. Pairs are order-significant and never nest; anything between or
// around well-formed pairs is ignored, and a dangling half-pair at the
// end of the markup is dropped.
func ParsePairs(markup string) []domain.DraftPair {
	var pairs []domain.DraftPair
	pos := 0
	for {
		o := strings.Index(markup[pos:], oldOpen)
		if o < 0 {
			break
		}
		oldStart := pos + o + len(oldOpen)
		oc := strings.Index(markup[oldStart:], oldClose)
		if oc < 0 {
			break
		}
		oldText := markup[oldStart : oldStart+oc]

		afterOld := oldStart + oc + len(oldClose)
		n := strings.Index(markup[afterOld:], newOpen)
		if n < 0 {
			break
		}
		newStart := afterOld + n + len(newOpen)
		nc := strings.Index(markup[newStart:], newClose)
		if nc < 0 {
			break
		}

		pairs = append(pairs, domain.DraftPair{
			OriginalSpanText: oldText,
			ReplacementText:  markup[newStart : newStart+nc],
			Ordinal:          len(pairs),
		})
		pos = newStart + nc + len(newClose)
	}
	return pairs
}

// Align locates each pair's original span inside the source text and
// builds the two comparison columns. Matching is strictly forward: each
// search starts after the end of the previous match, so a later pair can
// never bind to an earlier occurrence of identical text. Pairs that
// cannot be located are skipped and reported, never fatal.
func Align(original string, pairs []domain.DraftPair) (domain.DiffColumns, []domain.AlignmentMiss) {
	matches, misses := locate(original, pairs)

	var cols domain.DiffColumns
	prev := 0
	for _, m := range matches {
		if m.Start > prev {
			appendEqual(&cols, original[prev:m.Start])
		}
		pairID := domain.GenerateID()
		cols.Original = append(cols.Original, domain.DiffSegment{
			ID:     domain.GenerateID(),
			Kind:   domain.DiffRemoved,
			Text:   m.Pair.OriginalSpanText,
			PairID: pairID,
		})
		cols.Improved = append(cols.Improved, domain.DiffSegment{
			ID:     domain.GenerateID(),
			Kind:   domain.DiffAdded,
			Text:   m.Pair.ReplacementText,
			PairID: pairID,
		})
		prev = m.End
	}
	if prev < len(original) {
		appendEqual(&cols, original[prev:])
	}
	return cols, misses
}

// locate resolves pairs to byte ranges in the original text.
func locate(original string, pairs []domain.DraftPair) ([]domain.MatchedSpan, []domain.AlignmentMiss) {
	var matches []domain.MatchedSpan
	var misses []domain.AlignmentMiss

	cursor := 0
	for _, p := range pairs {
		idx := -1
		if p.OriginalSpanText != "" {
			idx = strings.Index(original[cursor:], p.OriginalSpanText)
		}
		if idx < 0 {
			misses = append(misses, domain.AlignmentMiss{
				Ordinal:          p.Ordinal,
				OriginalSpanText: p.OriginalSpanText,
			})
			continue
		}
		start := cursor + idx
		end := start + len(p.OriginalSpanText)
		matches = append(matches, domain.MatchedSpan{Pair: p, Start: start, End: end})
		cursor = end
	}
	return matches, misses
}

// appendEqual writes the same unchanged text into both columns.
func appendEqual(cols *domain.DiffColumns, text string) {
	cols.Original = append(cols.Original, domain.DiffSegment{
		ID:   domain.GenerateID(),
		Kind: domain.DiffEqual,
		Text: text,
	})
	cols.Improved = append(cols.Improved, domain.DiffSegment{
		ID:   domain.GenerateID(),
		Kind: domain.DiffEqual,
		Text: text,
	})
}
