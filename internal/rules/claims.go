package rules

import (
	"regexp"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// evidencePattern recognises adjacent support for a claim: a number, a
// percentage, a link, or a citation phrase.
var evidencePattern = regexp.MustCompile(`(?i)\d|%|https?://|www\.|according to|per our|source:|study|survey|report`)

// claimRule flags superlatives and absolute quantifiers that appear in a
// sentence with no adjacent evidence.
type claimRule struct {
	triggers *regexp.Regexp
}

// NewClaimRule creates the claim-without-evidence rule.
func NewClaimRule(lex Lexicons) Rule {
	return &claimRule{triggers: phrasePattern(lex.ClaimTriggers)}
}

func (r *claimRule) Kind() domain.IssueKind {
	return domain.IssueClaimWithoutEvidence
}

func (r *claimRule) EvaluateSentence(s domain.Sentence) []domain.Finding {
	matches := r.triggers.FindAllStringIndex(s.Text, -1)
	if len(matches) == 0 {
		return nil
	}
	if evidencePattern.MatchString(s.Text) {
		return nil
	}

	var findings []domain.Finding
	for _, m := range matches {
		findings = append(findings, domain.Finding{
			Kind:  domain.IssueClaimWithoutEvidence,
			Start: m[0],
			End:   m[1],
			Detail: domain.ClaimDetail{
				Trigger: s.Text[m[0]:m[1]],
			},
		})
	}
	return findings
}
