package segmenter

import (
	"strings"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// Config holds segmenter configuration.
type Config struct {
	// Abbreviations lists tokens whose trailing period never ends a
	// sentence when the next token starts lowercase (compared
	// case-insensitively, without the period).
	Abbreviations []string
}

// DefaultConfig returns the shipped abbreviation guard list.
func DefaultConfig() Config {
	return Config{
		Abbreviations: []string{
			"mr", "mrs", "ms", "dr", "prof", "st", "vs", "etc",
			"e.g", "i.e", "approx", "dept", "est", "inc", "jr", "sr", "no",
			"jan", "feb", "mar", "apr", "jun", "jul", "aug",
			"sep", "sept", "oct", "nov", "dec",
		},
	}
}

// Segmenter splits plain text into sentences with exact byte offsets.
// It is pure and safe for concurrent use.
type Segmenter struct {
	abbreviations map[string]struct{}
}

// New creates a segmenter from config.
func New(cfg Config) *Segmenter {
	abbr := make(map[string]struct{}, len(cfg.Abbreviations))
	for _, a := range cfg.Abbreviations {
		abbr[strings.ToLower(strings.TrimSuffix(a, "."))] = struct{}{}
	}
	return &Segmenter{abbreviations: abbr}
}

// Default creates a segmenter with the shipped configuration.
func Default() *Segmenter {
	return New(DefaultConfig())
}

// Segment splits plainText into ordered, non-overlapping sentences whose
// Text equals plainText[Start:End]. The empty document yields no sentences;
// a document with no terminal punctuation and no paragraph breaks yields
// exactly one sentence.
func (s *Segmenter) Segment(plainText string) []domain.Sentence {
	var sentences []domain.Sentence
	n := len(plainText)
	i := 0

	for i < n {
		for i < n && isSpace(plainText[i]) {
			i++
		}
		if i >= n {
			break
		}

		start := i
		end := s.scanSentenceEnd(plainText, start)

		// Trim trailing whitespace so Text carries visible characters only;
		// the gap between End and the next Start is the separating whitespace.
		visEnd := end
		for visEnd > start && isSpace(plainText[visEnd-1]) {
			visEnd--
		}

		if visEnd > start {
			sentences = append(sentences, domain.Sentence{
				Index: len(sentences),
				Text:  plainText[start:visEnd],
				Start: start,
				End:   visEnd,
			})
		}
		i = end
	}

	return sentences
}

// scanSentenceEnd returns the byte offset just past the sentence that
// starts at start, including any terminal punctuation run.
func (s *Segmenter) scanSentenceEnd(text string, start int) int {
	n := len(text)
	j := start

	for j < n {
		c := text[j]

		if isTerminal(c) {
			// Consume the whole punctuation run ("?!", "...").
			k := j + 1
			for k < n && isTerminal(text[k]) {
				k++
			}
			if (k >= n || isSpace(text[k])) && !s.guarded(text, start, j, k) {
				return k
			}
			j = k
			continue
		}

		// Paragraph-like break: a line with no terminal punctuation followed
		// by a blank line ends the sentence (bullet lists, headers).
		if c == '\n' && followedByBlankLine(text, j) {
			return j
		}

		j++
	}

	return n
}

// guarded reports whether the terminal punctuation at [punct,runEnd) must
// not end the sentence. A boundary is suppressed when the next token starts
// lowercase and the punctuation is either an ellipsis or a period whose
// preceding token is a single letter or a known abbreviation.
func (s *Segmenter) guarded(text string, start, punct, runEnd int) bool {
	next := runEnd
	n := len(text)
	for next < n && isSpace(text[next]) {
		next++
	}
	if next >= n {
		return false
	}
	nextLower := isLower(text[next])
	nextDigit := text[next] >= '0' && text[next] <= '9'

	run := text[punct:runEnd]
	if len(run) > 1 {
		// An ellipsis trailing into a lowercase continuation stays
		// in-sentence; mixed runs like "?!" always end one.
		return nextLower && strings.Count(run, ".") == len(run)
	}
	if run != "." {
		return false
	}

	tok := precedingToken(text, start, punct)
	if tok == "" {
		return false
	}
	if nextLower && len([]rune(tok)) == 1 && isLetterByte(tok[0]) {
		return true
	}
	if !nextLower && !nextDigit {
		return false
	}
	_, known := s.abbreviations[strings.ToLower(tok)]
	return known
}

// precedingToken extracts the token immediately before offset end,
// scanning no further back than start. Embedded periods are kept so
// "e.g" matches the abbreviation list.
func precedingToken(text string, start, end int) string {
	i := end
	for i > start {
		c := text[i-1]
		if isSpace(c) {
			break
		}
		i--
	}
	return strings.TrimSuffix(text[i:end], ".")
}

func followedByBlankLine(text string, nl int) bool {
	k := nl + 1
	n := len(text)
	for k < n && (text[k] == ' ' || text[k] == '\t' || text[k] == '\r') {
		k++
	}
	return k < n && text[k] == '\n'
}

func isTerminal(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isLetterByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
