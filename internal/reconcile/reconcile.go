package reconcile

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/annotate"
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// Result carries the highlight spans mapped onto the formatted content,
// any malformed markers recovered from the annotated input, and a single
// desync report when the plain and formatted streams diverge.
type Result struct {
	Highlights []domain.HighlightSpan
	Malformed  []domain.MalformedMarkerReport
	Desync     *domain.DesyncReport
}

// Reconcile maps the marker spans of annotated text onto offsets in the
// formatted, HTML-bearing content. Both representations are walked in
// lock-step by visible character; markup in the formatted stream is
// skipped. On divergence it fails closed: highlights already fully mapped
// are kept, nothing past the divergence point is emitted.
func Reconcile(annotatedText, formattedContent string) Result {
	plain, spans, malformed := annotate.Parse(annotatedText)

	starts, ends, desync := mapOffsets(plain, formattedContent)

	var highlights []domain.HighlightSpan
	for _, sp := range spans {
		start, okStart := starts[sp.Start]
		end, okEnd := ends[sp.End]
		if !okStart || !okEnd {
			continue
		}
		highlights = append(highlights, domain.HighlightSpan{
			Kind:             sp.Kind,
			StartInFormatted: start,
			EndInFormatted:   end,
		})
	}

	return Result{Highlights: highlights, Malformed: malformed, Desync: desync}
}

// mapOffsets walks plain and formatted together and returns, for every
// plain byte offset reached in sync, the corresponding formatted byte
// offset. Span starts map past any markup at that point so a highlight
// begins on a visible character; span ends map before trailing markup so
// a highlight never swallows a closing tag. Whitespace runs of different
// widths count as one synchronized step, which absorbs the whitespace
// normalisation applied upstream; a boundary falling inside such a run is
// clamped to the run's nearest edge.
func mapOffsets(plain, formatted string) (starts, ends map[int]int, desync *domain.DesyncReport) {
	starts = make(map[int]int, len(plain)/2)
	ends = make(map[int]int, len(plain)/2)

	p, f := 0, 0
	for p < len(plain) {
		ends[p] = f
		f = skipMarkup(formatted, f)
		starts[p] = f

		if f >= len(formatted) {
			return starts, ends, &domain.DesyncReport{
				PlainOffset:     p,
				FormattedOffset: f,
				Reason:          "formatted content ended before plain text",
			}
		}

		pr, pw := utf8.DecodeRuneInString(plain[p:])
		fr, fw := decodeVisible(formatted[f:])

		switch {
		case unicode.IsSpace(pr) && unicode.IsSpace(fr):
			pNext := skipSpace(plain, p)
			fNext := skipFormattedSpace(formatted, f)
			// A span boundary strictly inside the run has no exact image
			// when the two runs differ in width. Clamp it to the run's
			// edges rather than dropping the whole highlight: ends pull
			// back to before the run, starts push forward past it.
			for q := p + pw; q < pNext; {
				ends[q] = ends[p]
				starts[q] = skipMarkup(formatted, fNext)
				_, w := utf8.DecodeRuneInString(plain[q:])
				q += w
			}
			p, f = pNext, fNext
		case pr == fr:
			p += pw
			f += fw
		default:
			return starts, ends, &domain.DesyncReport{
				PlainOffset:     p,
				FormattedOffset: f,
				Reason:          "visible characters diverged",
			}
		}
	}
	ends[p] = f
	starts[p] = skipMarkup(formatted, f)
	return starts, ends, nil
}

// skipMarkup advances past any run of tags starting at f.
func skipMarkup(formatted string, f int) int {
	for f < len(formatted) && formatted[f] == '<' && looksLikeTag(formatted[f:]) {
		end := strings.IndexByte(formatted[f:], '>')
		if end < 0 {
			return f
		}
		f += end + 1
	}
	return f
}

// looksLikeTag reports whether s starts an HTML tag rather than a bare
// angle bracket in prose.
func looksLikeTag(s string) bool {
	if len(s) < 2 {
		return false
	}
	c := s[1]
	if c == '/' {
		return len(s) > 2 && isTagNameByte(s[2])
	}
	return isTagNameByte(c) || c == '!'
}

func isTagNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// entities covers the named references an inline-markup editor emits.
var entities = map[string]rune{
	"amp":  '&',
	"lt":   '<',
	"gt":   '>',
	"quot": '"',
	"apos": '\'',
	"nbsp": ' ',
	"#39":  '\'',
}

// decodeVisible decodes the next visible rune of the formatted stream,
// resolving character entities to the rune they stand for.
func decodeVisible(s string) (rune, int) {
	if s[0] == '&' {
		if semi := strings.IndexByte(s, ';'); semi > 1 && semi <= 8 {
			if r, ok := entities[s[1:semi]]; ok {
				return r, semi + 1
			}
		}
	}
	return utf8.DecodeRuneInString(s)
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, w := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += w
	}
	return i
}

// skipFormattedSpace consumes a whitespace run in the formatted stream,
// stepping over any tags and space entities embedded in the run.
func skipFormattedSpace(s string, i int) int {
	for i < len(s) {
		if s[i] == '<' && looksLikeTag(s[i:]) {
			j := skipMarkup(s, i)
			if j == i {
				break
			}
			i = j
			continue
		}
		r, w := decodeVisible(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += w
	}
	return i
}
