package annotate

import (
	"strings"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// Marker syntax is <kind>text</kind> where kind is a known issue kind.
// Markers never self-close and never carry attributes. Anything else that
// looks like a tag, including HTML, passes through as plain text.

type tokenType int

const (
	tokenText tokenType = iota
	tokenOpen
	tokenClose
)

type token struct {
	typ    tokenType
	kind   domain.IssueKind
	text   string
	offset int
}

// tokenize walks the annotated text once, recognising marker boundaries
// with a small scanner instead of per-kind patterns. Unknown tags are
// emitted as text tokens.
func tokenize(annotated string) []token {
	var tokens []token
	textStart := 0

	flush := func(end int) {
		if end > textStart {
			tokens = append(tokens, token{
				typ:    tokenText,
				text:   annotated[textStart:end],
				offset: textStart,
			})
		}
	}

	for i := 0; i < len(annotated); {
		if annotated[i] != '<' {
			i++
			continue
		}
		kind, closing, width := scanMarker(annotated[i:])
		if width == 0 {
			i++
			continue
		}
		flush(i)
		typ := tokenOpen
		if closing {
			typ = tokenClose
		}
		tokens = append(tokens, token{typ: typ, kind: kind, offset: i})
		i += width
		textStart = i
	}
	flush(len(annotated))
	return tokens
}

// scanMarker reports the issue kind, whether the tag is closing, and the
// byte width of a marker starting at s[0] == '<'. Width 0 means no marker.
func scanMarker(s string) (domain.IssueKind, bool, int) {
	i := 1
	closing := false
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}
	nameStart := i
	for i < len(s) && (isMarkerNameByte(s[i])) {
		i++
	}
	if i == nameStart || i >= len(s) || s[i] != '>' {
		return "", false, 0
	}
	kind := domain.IssueKind(s[nameStart:i])
	if !kind.Valid() {
		return "", false, 0
	}
	return kind, closing, i + 1
}

func isMarkerNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || b == '_'
}

// Parse strips all well-formed markers from annotated text, returning the
// underlying plain text, the marker spans in plain-text byte offsets, and
// a report for every dangling or mismatched marker. Dangling markers are
// recovered by treating their content as plain text.
func Parse(annotated string) (string, []domain.AnnotatedSpan, []domain.MalformedMarkerReport) {
	tokens := tokenize(annotated)

	type openMarker struct {
		kind   domain.IssueKind
		start  int // offset in the stripped output
		offset int // offset in the annotated input
	}

	var b strings.Builder
	var stack []openMarker
	var spans []domain.AnnotatedSpan
	var reports []domain.MalformedMarkerReport

	for _, tok := range tokens {
		switch tok.typ {
		case tokenText:
			b.WriteString(tok.text)
		case tokenOpen:
			stack = append(stack, openMarker{kind: tok.kind, start: b.Len(), offset: tok.offset})
		case tokenClose:
			if len(stack) > 0 && stack[len(stack)-1].kind == tok.kind {
				open := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				spans = append(spans, domain.AnnotatedSpan{
					Kind:  open.kind,
					Start: open.start,
					End:   b.Len(),
				})
				continue
			}
			reports = append(reports, domain.MalformedMarkerReport{
				Kind:   tok.kind,
				Offset: tok.offset,
				Reason: "closing marker without matching open",
			})
		}
	}

	// Anything still open never closed; its text stays plain.
	for _, open := range stack {
		reports = append(reports, domain.MalformedMarkerReport{
			Kind:   open.kind,
			Offset: open.offset,
			Reason: "unterminated marker",
		})
	}

	sortSpans(spans)
	return b.String(), spans, reports
}

// Strip returns the annotated text with all recognised markers removed.
func Strip(annotated string) string {
	plain, _, _ := Parse(annotated)
	return plain
}
