package rules

import (
	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// Rule is a pure, independent issue detector. Rules never see each other's
// output; overlap between their findings is resolved by the injector.
type Rule interface {
	// Kind returns the issue kind this rule reports.
	Kind() domain.IssueKind

	// EvaluateSentence returns findings with offsets relative to the
	// sentence's own text. Offsets outside the sentence are a defect and
	// are rejected downstream, never propagated.
	EvaluateSentence(s domain.Sentence) []domain.Finding
}

// DocumentRule is implemented by rules that also evaluate the document as
// a whole. Findings use document-global offsets and SentenceIndex -1.
type DocumentRule interface {
	Rule
	EvaluateDocument(plainText string, sentences []domain.Sentence) []domain.Finding
}

// RuleSet is an explicit, constructed set of rules. Analyses with different
// configurations hold different RuleSet values; there is no package-level
// registry to mutate.
type RuleSet struct {
	rules []Rule
	opts  domain.RuleOptions
}

// NewRuleSet creates a rule set with the given options and rules.
// Registration order is significant: the injector trims the
// later-registered span when two kinds partially overlap.
func NewRuleSet(opts domain.RuleOptions, rules ...Rule) *RuleSet {
	return &RuleSet{
		rules: rules,
		opts:  opts.Normalized(),
	}
}

// DefaultRuleSet creates the shipped set of ten rules.
func DefaultRuleSet(opts domain.RuleOptions) *RuleSet {
	opts = opts.Normalized()
	lex := DefaultLexicons()
	return NewRuleSet(opts,
		NewSpamWordsRule(lex),
		NewGrammarRule(lex),
		NewClaimRule(lex),
		NewHardToReadRule(opts.HardToReadWordLimit),
		NewFluffRule(lex),
		NewHedgingRule(lex),
		NewVagueDateRule(lex),
		NewVagueNumberRule(lex),
		NewEmojiExcessRule(opts.EmojiLimit),
		NewCTARule(lex),
	)
}

// Options returns the normalized options the set was built with.
func (rs *RuleSet) Options() domain.RuleOptions {
	return rs.opts
}

// Rules returns the rules in registration order.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// EvaluateSentence runs every rule against one sentence. Findings are
// returned in registration order, which downstream overlap resolution
// relies on.
func (rs *RuleSet) EvaluateSentence(s domain.Sentence) []domain.Finding {
	var findings []domain.Finding
	for _, r := range rs.rules {
		for _, f := range r.EvaluateSentence(s) {
			f.SentenceIndex = s.Index
			findings = append(findings, f)
		}
	}
	return findings
}

// EvaluateDocument runs the document-scope half of rules that have one.
func (rs *RuleSet) EvaluateDocument(plainText string, sentences []domain.Sentence) []domain.Finding {
	var findings []domain.Finding
	for _, r := range rs.rules {
		dr, ok := r.(DocumentRule)
		if !ok {
			continue
		}
		for _, f := range dr.EvaluateDocument(plainText, sentences) {
			f.SentenceIndex = -1
			findings = append(findings, f)
		}
	}
	return findings
}
