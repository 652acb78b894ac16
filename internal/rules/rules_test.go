package rules

import (
	"strings"
	"testing"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

func sentence(text string) domain.Sentence {
	return domain.Sentence{Index: 0, Text: text, Start: 0, End: len(text)}
}

func TestSpamWordsRule(t *testing.T) {
	r := NewSpamWordsRule(DefaultLexicons())

	got := r.EvaluateSentence(sentence("Act now and claim your free bonus."))
	if len(got) != 2 {
		t.Fatalf("expected 2 findings, got %d: %+v", len(got), got)
	}
	text := "Act now and claim your free bonus."
	if text[got[0].Start:got[0].End] != "Act now" {
		t.Errorf("expected first match 'Act now', got %q", text[got[0].Start:got[0].End])
	}
	if text[got[1].Start:got[1].End] != "free" {
		t.Errorf("expected second match 'free', got %q", text[got[1].Start:got[1].End])
	}
}

func TestSpamWordsRuleSkipsURLs(t *testing.T) {
	r := NewSpamWordsRule(DefaultLexicons())

	got := r.EvaluateSentence(sentence("Details at https://example.com/free-guide today."))
	if len(got) != 0 {
		t.Errorf("expected no findings inside URL, got %+v", got)
	}

	got = r.EvaluateSentence(sentence("It is free at https://example.com/guide today."))
	if len(got) != 1 {
		t.Fatalf("expected 1 finding outside URL, got %d", len(got))
	}
}

func TestFluffRulePrefersLongestPhrase(t *testing.T) {
	r := NewFluffRule(DefaultLexicons())
	text := "This is a really great deal."

	got := r.EvaluateSentence(sentence(text))
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(got), got)
	}
	if text[got[0].Start:got[0].End] != "really great" {
		t.Errorf("expected 'really great', got %q", text[got[0].Start:got[0].End])
	}
	detail, ok := got[0].Detail.(domain.FluffDetail)
	if !ok {
		t.Fatalf("expected FluffDetail, got %T", got[0].Detail)
	}
	if detail.Phrase != "really great" {
		t.Errorf("expected detail phrase 'really great', got %q", detail.Phrase)
	}
}

func TestHedgingRule(t *testing.T) {
	r := NewHedgingRule(DefaultLexicons())
	text := "We might ship this, and it could help."

	got := r.EvaluateSentence(sentence(text))
	if len(got) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(got))
	}
}

func TestVagueRules(t *testing.T) {
	dates := NewVagueDateRule(DefaultLexicons())
	numbers := NewVagueNumberRule(DefaultLexicons())
	text := "Coming soon with a few surprises."

	if got := dates.EvaluateSentence(sentence(text)); len(got) != 1 {
		t.Errorf("expected 1 vague_date finding, got %d", len(got))
	}
	if got := numbers.EvaluateSentence(sentence(text)); len(got) != 1 {
		t.Errorf("expected 1 vague_number finding, got %d", len(got))
	}

	concrete := "Shipping March 3 with 12 surprises."
	if got := dates.EvaluateSentence(sentence(concrete)); len(got) != 0 {
		t.Errorf("expected no vague_date findings, got %+v", got)
	}
	if got := numbers.EvaluateSentence(sentence(concrete)); len(got) != 0 {
		t.Errorf("expected no vague_number findings, got %+v", got)
	}
}

func TestGrammarRuleMisspelling(t *testing.T) {
	r := NewGrammarRule(DefaultLexicons())
	text := "You will recieve the update."

	got := r.EvaluateSentence(sentence(text))
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(got), got)
	}
	detail := got[0].Detail.(domain.GrammarDetail)
	if detail.Heuristic != "misspelling" || detail.Misspellings[0] != "recieve" {
		t.Errorf("unexpected detail: %+v", detail)
	}
}

func TestGrammarRuleCapitalization(t *testing.T) {
	r := NewGrammarRule(DefaultLexicons())

	got := r.EvaluateSentence(sentence("welcome to the newsletter."))
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(got))
	}
	if got[0].Detail.(domain.GrammarDetail).Heuristic != "capitalization" {
		t.Errorf("expected capitalization heuristic, got %+v", got[0].Detail)
	}

	if got := r.EvaluateSentence(sentence("Welcome to the newsletter.")); len(got) != 0 {
		t.Errorf("expected no findings, got %+v", got)
	}
	// Bullet-led sentences are not sentence-initial prose.
	if got := r.EvaluateSentence(sentence("- item in a list")); len(got) != 0 {
		t.Errorf("expected no findings for bullet line, got %+v", got)
	}
}

func TestGrammarRuleRepeatedWord(t *testing.T) {
	r := NewGrammarRule(DefaultLexicons())
	text := "We shipped the the update."

	got := r.EvaluateSentence(sentence(text))
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(got), got)
	}
	if text[got[0].Start:got[0].End] != "the the" {
		t.Errorf("expected span 'the the', got %q", text[got[0].Start:got[0].End])
	}

	// Tokens of length <= 2 never fire.
	if got := r.EvaluateSentence(sentence("We do do it.")); len(got) != 0 {
		t.Errorf("expected no findings for short tokens, got %+v", got)
	}
}

func TestGrammarRuleSpacedPunctuation(t *testing.T) {
	r := NewGrammarRule(DefaultLexicons())
	got := r.EvaluateSentence(sentence("Hello , world."))
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(got), got)
	}
	if got[0].Detail.(domain.GrammarDetail).Heuristic != "spaced_punctuation" {
		t.Errorf("unexpected detail: %+v", got[0].Detail)
	}
}

func TestClaimRule(t *testing.T) {
	r := NewClaimRule(DefaultLexicons())

	got := r.EvaluateSentence(sentence("We are the best newsletter around."))
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(got))
	}
	if got[0].Detail.(domain.ClaimDetail).Trigger != "best" {
		t.Errorf("unexpected trigger: %+v", got[0].Detail)
	}

	// Adjacent evidence suppresses the claim.
	if got := r.EvaluateSentence(sentence("We are the best newsletter, read by 12000 people.")); len(got) != 0 {
		t.Errorf("expected no findings with evidence, got %+v", got)
	}
	if got := r.EvaluateSentence(sentence("The best guide according to our readers.")); len(got) != 0 {
		t.Errorf("expected no findings with citation, got %+v", got)
	}
}

func TestHardToReadRule(t *testing.T) {
	r := NewHardToReadRule(25)

	long := strings.Repeat("word ", 26) + "end"
	got := r.EvaluateSentence(sentence(long))
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(got))
	}
	if got[0].Start != 0 || got[0].End != len(long) {
		t.Errorf("expected finding to cover the whole sentence, got [%d,%d)", got[0].Start, got[0].End)
	}
	detail := got[0].Detail.(domain.HardToReadDetail)
	if detail.WordCount != 27 {
		t.Errorf("expected 27 words, got %d", detail.WordCount)
	}

	if got := r.EvaluateSentence(sentence("Short and sweet.")); len(got) != 0 {
		t.Errorf("expected no findings, got %+v", got)
	}
}

func TestHardToReadRuleClauseCount(t *testing.T) {
	r := NewHardToReadRule(25)
	text := "First, second, third, fourth, fifth clause in one short sentence."
	got := r.EvaluateSentence(sentence(text))
	if len(got) != 1 {
		t.Fatalf("expected clause-count finding, got %d", len(got))
	}
}

func TestEmojiExcessRule(t *testing.T) {
	r := NewEmojiExcessRule(2)

	text := "\U0001F389\U0001F680\U0001F525"
	got := r.EvaluateSentence(sentence(text))
	if len(got) != 1 {
		t.Fatalf("expected exactly one finding covering the run, got %d", len(got))
	}
	if got[0].Start != 0 || got[0].End != len(text) {
		t.Errorf("expected run [0,%d), got [%d,%d)", len(text), got[0].Start, got[0].End)
	}
	detail := got[0].Detail.(domain.EmojiExcessDetail)
	if detail.Count != 3 || detail.Threshold != 2 {
		t.Errorf("unexpected detail: %+v", detail)
	}

	// At or below the threshold is fine.
	if got := r.EvaluateSentence(sentence("Great job \U0001F389\U0001F680")); len(got) != 0 {
		t.Errorf("expected no findings at threshold, got %+v", got)
	}
}

func TestCTARule(t *testing.T) {
	r := NewCTARule(DefaultLexicons())

	got := r.EvaluateSentence(sentence("Subscribe to our newsletter today."))
	if len(got) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(got))
	}
	if got[0].Detail.(domain.CTADetail).Verb != "subscribe" {
		t.Errorf("unexpected verb: %+v", got[0].Detail)
	}

	// Bullet-prefixed imperatives still count.
	if got := r.EvaluateSentence(sentence("- Download the report")); len(got) != 1 {
		t.Errorf("expected bullet CTA finding, got %+v", got)
	}

	// A verb mid-sentence is not a leading imperative.
	if got := r.EvaluateSentence(sentence("You can subscribe anytime.")); len(got) != 0 {
		t.Errorf("expected no findings, got %+v", got)
	}
}

func TestDefaultRuleSet(t *testing.T) {
	rs := DefaultRuleSet(domain.RuleOptions{})

	if len(rs.Rules()) != 10 {
		t.Fatalf("expected 10 rules, got %d", len(rs.Rules()))
	}

	seen := make(map[domain.IssueKind]bool)
	for _, r := range rs.Rules() {
		if seen[r.Kind()] {
			t.Errorf("duplicate rule kind %s", r.Kind())
		}
		seen[r.Kind()] = true
	}
	for _, kind := range domain.AllIssueKinds {
		if !seen[kind] {
			t.Errorf("missing rule for kind %s", kind)
		}
	}
}

func TestRuleSetEvaluateSentenceSetsIndex(t *testing.T) {
	rs := DefaultRuleSet(domain.RuleOptions{})
	s := domain.Sentence{Index: 4, Text: "This is a really great deal.", Start: 100, End: 128}

	findings := rs.EvaluateSentence(s)
	if len(findings) == 0 {
		t.Fatal("expected findings")
	}
	for _, f := range findings {
		if f.SentenceIndex != 4 {
			t.Errorf("expected sentence index 4, got %d", f.SentenceIndex)
		}
		if f.Start < 0 || f.End > len(s.Text) {
			t.Errorf("finding out of sentence bounds: [%d,%d)", f.Start, f.End)
		}
	}
}

func TestRuleSetDeterministic(t *testing.T) {
	rs := DefaultRuleSet(domain.RuleOptions{})
	s := sentence("Act now for a really great, guaranteed deal that might arrive soon.")

	first := rs.EvaluateSentence(s)
	second := rs.EvaluateSentence(s)
	if len(first) != len(second) {
		t.Fatalf("non-deterministic finding count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind || first[i].Start != second[i].Start || first[i].End != second[i].End {
			t.Errorf("finding %d differs between runs", i)
		}
	}
}
