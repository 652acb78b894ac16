package rules

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

var wordPattern = regexp.MustCompile(`[A-Za-z']+`)

// grammarRule combines a known-misspelling lexicon with capitalization,
// repeated-word and spaced-punctuation heuristics.
type grammarRule struct {
	misspellings *regexp.Regexp
}

// NewGrammarRule creates the grammar/spelling rule.
func NewGrammarRule(lex Lexicons) Rule {
	return &grammarRule{misspellings: phrasePattern(lex.Misspellings)}
}

func (r *grammarRule) Kind() domain.IssueKind {
	return domain.IssueGrammarSpelling
}

func (r *grammarRule) EvaluateSentence(s domain.Sentence) []domain.Finding {
	var findings []domain.Finding

	for _, m := range r.misspellings.FindAllStringIndex(s.Text, -1) {
		findings = append(findings, domain.Finding{
			Kind:  domain.IssueGrammarSpelling,
			Start: m[0],
			End:   m[1],
			Detail: domain.GrammarDetail{
				Misspellings: []string{strings.ToLower(s.Text[m[0]:m[1]])},
				Heuristic:    "misspelling",
			},
		})
	}

	if f, ok := r.checkCapitalization(s.Text); ok {
		findings = append(findings, f)
	}
	findings = append(findings, r.checkRepeatedWords(s.Text)...)
	findings = append(findings, r.checkSpacedPunctuation(s.Text)...)

	return findings
}

// checkCapitalization flags a sentence whose first word starts lowercase.
// Sentences led by bullets, digits or symbols are left alone.
func (r *grammarRule) checkCapitalization(text string) (domain.Finding, bool) {
	loc := wordPattern.FindStringIndex(text)
	if loc == nil {
		return domain.Finding{}, false
	}
	// Only the true start of the sentence counts; a leading "- " or emoji
	// means the first word is not sentence-initial prose.
	prefix := strings.TrimSpace(text[:loc[0]])
	if prefix != "" {
		return domain.Finding{}, false
	}
	first := rune(text[loc[0]])
	if !unicode.IsLower(first) {
		return domain.Finding{}, false
	}
	return domain.Finding{
		Kind:  domain.IssueGrammarSpelling,
		Start: loc[0],
		End:   loc[1],
		Detail: domain.GrammarDetail{
			Heuristic: "capitalization",
		},
	}, true
}

// checkRepeatedWords flags immediate duplicates ("the the"). Tokens of
// length <= 2 are skipped: "had had" style false positives outnumber
// genuine doubled short words.
func (r *grammarRule) checkRepeatedWords(text string) []domain.Finding {
	words := wordPattern.FindAllStringIndex(text, -1)
	var findings []domain.Finding

	for i := 1; i < len(words); i++ {
		prev := text[words[i-1][0]:words[i-1][1]]
		cur := text[words[i][0]:words[i][1]]
		if len(cur) <= 2 {
			continue
		}
		if !strings.EqualFold(prev, cur) {
			continue
		}
		// Only adjacent duplicates separated by whitespace count.
		between := text[words[i-1][1]:words[i][0]]
		if strings.TrimSpace(between) != "" {
			continue
		}
		findings = append(findings, domain.Finding{
			Kind:  domain.IssueGrammarSpelling,
			Start: words[i-1][0],
			End:   words[i][1],
			Detail: domain.GrammarDetail{
				RepeatedWord: strings.ToLower(cur),
				Heuristic:    "repeated_word",
			},
		})
	}
	return findings
}

var spacedPunctPattern = regexp.MustCompile(`\w+ +[,.;:!?]`)

// checkSpacedPunctuation flags a space squeezed before punctuation
// ("word ,"). The span covers the word too so the highlight stays above
// the minimum visible length.
func (r *grammarRule) checkSpacedPunctuation(text string) []domain.Finding {
	var findings []domain.Finding
	for _, m := range spacedPunctPattern.FindAllStringIndex(text, -1) {
		findings = append(findings, domain.Finding{
			Kind:  domain.IssueGrammarSpelling,
			Start: m[0],
			End:   m[1],
			Detail: domain.GrammarDetail{
				Heuristic: "spaced_punctuation",
			},
		})
	}
	return findings
}
