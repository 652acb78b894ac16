package rules

import (
	"regexp"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// lexiconRule flags every lexicon phrase occurrence in a sentence.
// It backs the spam, fluff, hedging and vague-quantity rules, which differ
// only in kind, word list, URL policy and detail payload.
type lexiconRule struct {
	kind     domain.IssueKind
	pattern  *regexp.Regexp
	skipURLs bool
	detail   func(phrase string) domain.Detail
}

func (r *lexiconRule) Kind() domain.IssueKind {
	return r.kind
}

func (r *lexiconRule) EvaluateSentence(s domain.Sentence) []domain.Finding {
	matches := r.pattern.FindAllStringIndex(s.Text, -1)
	if len(matches) == 0 {
		return nil
	}

	var urls [][]int
	if r.skipURLs {
		urls = urlSpans(s.Text)
	}

	var findings []domain.Finding
	for _, m := range matches {
		if r.skipURLs && insideAny(urls, m[0], m[1]) {
			continue
		}
		findings = append(findings, domain.Finding{
			Kind:   r.kind,
			Start:  m[0],
			End:    m[1],
			Detail: r.detail(s.Text[m[0]:m[1]]),
		})
	}
	return findings
}

// NewSpamWordsRule flags spam-trigger phrases, skipping URLs so a link
// like example.com/free-guide is not punished for its slug.
func NewSpamWordsRule(lex Lexicons) Rule {
	return &lexiconRule{
		kind:     domain.IssueSpamWords,
		pattern:  phrasePattern(lex.SpamPhrases),
		skipURLs: true,
		detail: func(phrase string) domain.Detail {
			return domain.SpamWordsDetail{Phrases: []string{phrase}}
		},
	}
}

// NewFluffRule flags filler adverbs and intensifiers.
func NewFluffRule(lex Lexicons) Rule {
	return &lexiconRule{
		kind:    domain.IssueFluff,
		pattern: phrasePattern(lex.FluffPhrases),
		detail: func(phrase string) domain.Detail {
			return domain.FluffDetail{Phrase: phrase}
		},
	}
}

// NewHedgingRule flags hedge words that weaken the copy.
func NewHedgingRule(lex Lexicons) Rule {
	return &lexiconRule{
		kind:    domain.IssueHedging,
		pattern: phrasePattern(lex.HedgePhrases),
		detail: func(phrase string) domain.Detail {
			return domain.HedgingDetail{Word: phrase}
		},
	}
}

// NewVagueDateRule flags vague time references ("soon") where a concrete
// date would land better.
func NewVagueDateRule(lex Lexicons) Rule {
	return &lexiconRule{
		kind:    domain.IssueVagueDate,
		pattern: phrasePattern(lex.VagueDatePhrases),
		detail: func(phrase string) domain.Detail {
			return domain.VagueDetail{Phrase: phrase}
		},
	}
}

// NewVagueNumberRule flags vague quantities ("a few") where a concrete
// number would land better.
func NewVagueNumberRule(lex Lexicons) Rule {
	return &lexiconRule{
		kind:    domain.IssueVagueNumber,
		pattern: phrasePattern(lex.VagueNumberPhrases),
		detail: func(phrase string) domain.Detail {
			return domain.VagueDetail{Phrase: phrase}
		},
	}
}
