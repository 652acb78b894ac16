package annotate

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// kindOrder ranks issue kinds by registration order, used to break ties
// between spans of equal severity claiming the same range.
var kindOrder = func() map[domain.IssueKind]int {
	order := make(map[domain.IssueKind]int, len(domain.AllIssueKinds))
	for i, kind := range domain.AllIssueKinds {
		order[kind] = i
	}
	return order
}()

// candidate is a span still subject to overlap repair. seq preserves
// findings order as the tiebreak when two spans of the same kind collide.
type candidate struct {
	domain.AnnotatedSpan
	seq int
}

// Inject converts sentence-relative findings into document-global spans,
// repairs overlaps, and serialises the result as marker pairs inside a
// copy of the plain text. The characters between markers are never
// altered, so stripping the markers reproduces plainText exactly.
func Inject(plainText string, sentences []domain.Sentence, findings []domain.Finding, opts domain.RuleOptions) (string, []domain.AnnotatedSpan) {
	opts = opts.Normalized()

	spans := globalize(plainText, sentences, findings)
	spans = filterDegenerate(plainText, spans, opts.MinSpanLength)
	resolved := resolveOverlaps(plainText, spans, opts.MinSpanLength)

	return serialize(plainText, resolved), resolved
}

// globalize shifts each finding into plain-text coordinates. Findings with
// offsets outside their sentence are evaluator defects and are rejected
// here rather than propagated. A negative sentence index marks a
// document-level finding whose offsets are already global.
func globalize(plainText string, sentences []domain.Sentence, findings []domain.Finding) []candidate {
	var spans []candidate
	for seq, f := range findings {
		start, end := f.Start, f.End
		if f.SentenceIndex >= 0 {
			if f.SentenceIndex >= len(sentences) {
				continue
			}
			s := sentences[f.SentenceIndex]
			if start < 0 || end > len(s.Text) || start >= end {
				continue
			}
			start += s.Start
			end += s.Start
		} else if start < 0 || end > len(plainText) || start >= end {
			continue
		}
		spans = append(spans, candidate{
			AnnotatedSpan: domain.AnnotatedSpan{Kind: f.Kind, Start: start, End: end},
			seq:           seq,
		})
	}
	return spans
}

// filterDegenerate drops spans whose covered text is whitespace-only or
// shorter than the minimum visible length.
func filterDegenerate(plainText string, spans []candidate, minLen int) []candidate {
	kept := spans[:0]
	for _, sp := range spans {
		if visibleLength(plainText[sp.Start:sp.End]) >= minLen {
			kept = append(kept, sp)
		}
	}
	return kept
}

// visibleLength counts the runes of text after stripping any embedded
// markers and surrounding whitespace.
func visibleLength(text string) int {
	stripped := text
	if strings.ContainsRune(text, '<') {
		stripped = Strip(text)
	}
	return utf8.RuneCountInString(strings.TrimSpace(stripped))
}

// resolveOverlaps enforces the span invariant: any two surviving spans are
// disjoint or fully nested. Partial overlaps trim the later-registered
// span to its non-overlapping remainder; identical ranges keep the
// higher-severity kind.
func resolveOverlaps(plainText string, spans []candidate, minLen int) []domain.AnnotatedSpan {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		if spans[i].End != spans[j].End {
			return spans[i].End > spans[j].End
		}
		return spans[i].seq < spans[j].seq
	})

	var accepted []candidate
	for _, sp := range spans {
		keep := true
		for i := 0; i < len(accepted) && keep; i++ {
			a := &accepted[i]
			switch {
			case sp.Start >= a.End || sp.End <= a.Start:
				// Disjoint.
			case sp.Start == a.Start && sp.End == a.End:
				if outranks(sp, a.AnnotatedSpan) {
					a.AnnotatedSpan = sp.AnnotatedSpan
					a.seq = sp.seq
				}
				keep = false
			case sp.Start > a.Start && sp.End < a.End:
				// Strictly nested inside, allowed.
			case sp.Start < a.Start && sp.End > a.End:
				// Strictly contains the accepted span, allowed.
			default:
				// Partial overlap. Containment that shares an endpoint
				// counts as partial, not nested. Trim whichever rule was
				// registered later.
				if laterRegistered(sp, *a) {
					sp.Start, sp.End = trim(sp.AnnotatedSpan, a.AnnotatedSpan)
					if sp.Start >= sp.End || visibleLength(plainText[sp.Start:sp.End]) < minLen {
						keep = false
					}
				} else {
					a.Start, a.End = trim(a.AnnotatedSpan, sp.AnnotatedSpan)
				}
			}
		}
		if keep {
			accepted = append(accepted, sp)
		}
	}

	// Trimming an accepted span can make it degenerate.
	var result []domain.AnnotatedSpan
	for _, a := range accepted {
		if a.Start < a.End && visibleLength(plainText[a.Start:a.End]) >= minLen {
			result = append(result, a.AnnotatedSpan)
		}
	}
	sortSpans(result)
	return result
}

// laterRegistered reports whether span a's rule was registered after span
// b's. Kind order is the rule set's registration order; findings order
// breaks ties within a kind.
func laterRegistered(a, b candidate) bool {
	if ra, rb := kindOrder[a.Kind], kindOrder[b.Kind]; ra != rb {
		return ra > rb
	}
	return a.seq > b.seq
}

// outranks reports whether span a should replace span b for an identical
// range: higher severity wins, then earlier registration order.
func outranks(a candidate, b domain.AnnotatedSpan) bool {
	ra := domain.SeverityOf(a.Kind).Rank()
	rb := domain.SeverityOf(b.Kind).Rank()
	if ra != rb {
		return ra > rb
	}
	return kindOrder[a.Kind] < kindOrder[b.Kind]
}

// trim cuts span a down to the part not covered by b.
func trim(a, b domain.AnnotatedSpan) (int, int) {
	if a.Start < b.Start {
		return a.Start, b.Start
	}
	return b.End, a.End
}

func sortSpans(spans []domain.AnnotatedSpan) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})
}

// serialize writes marker pairs around each span in document order. Spans
// are disjoint or nested at this point, so a simple open stack suffices.
func serialize(plainText string, spans []domain.AnnotatedSpan) string {
	if len(spans) == 0 {
		return plainText
	}

	var b strings.Builder
	b.Grow(len(plainText) + len(spans)*24)

	var stack []domain.AnnotatedSpan
	next := 0
	for pos := 0; pos <= len(plainText); pos++ {
		for len(stack) > 0 && stack[len(stack)-1].End == pos {
			b.WriteString("</")
			b.WriteString(string(stack[len(stack)-1].Kind))
			b.WriteByte('>')
			stack = stack[:len(stack)-1]
		}
		for next < len(spans) && spans[next].Start == pos {
			b.WriteByte('<')
			b.WriteString(string(spans[next].Kind))
			b.WriteByte('>')
			stack = append(stack, spans[next])
			next++
		}
		if pos < len(plainText) {
			b.WriteByte(plainText[pos])
		}
	}
	return b.String()
}
