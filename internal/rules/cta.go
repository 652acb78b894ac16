package rules

import (
	"strings"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// ctaRule flags sentences that lead with an imperative action verb.
// Informational only: calls to action are reported, never penalised.
type ctaRule struct {
	verbs map[string]struct{}
}

// NewCTARule creates the call-to-action rule.
func NewCTARule(lex Lexicons) Rule {
	verbs := make(map[string]struct{}, len(lex.CTAVerbs))
	for _, v := range lex.CTAVerbs {
		verbs[strings.ToLower(v)] = struct{}{}
	}
	return &ctaRule{verbs: verbs}
}

func (r *ctaRule) Kind() domain.IssueKind {
	return domain.IssueCTA
}

func (r *ctaRule) EvaluateSentence(s domain.Sentence) []domain.Finding {
	loc := wordPattern.FindStringIndex(s.Text)
	if loc == nil {
		return nil
	}
	// Bullets and list markers may precede the verb; prose may not.
	prefix := strings.TrimSpace(s.Text[:loc[0]])
	if prefix != "" && prefix != "-" && prefix != "*" && prefix != ">" {
		return nil
	}

	word := strings.ToLower(s.Text[loc[0]:loc[1]])
	if _, ok := r.verbs[word]; !ok {
		return nil
	}

	return []domain.Finding{{
		Kind:  domain.IssueCTA,
		Start: loc[0],
		End:   loc[1],
		Detail: domain.CTADetail{
			Verb: word,
		},
	}}
}
