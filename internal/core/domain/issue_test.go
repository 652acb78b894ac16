package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestIssueKindValid(t *testing.T) {
	for _, kind := range AllIssueKinds {
		if !kind.Valid() {
			t.Errorf("expected %s to be valid", kind)
		}
	}

	if IssueKind("passive_voice").Valid() {
		t.Error("expected unknown kind to be invalid")
	}
	if IssueKind("").Valid() {
		t.Error("expected empty kind to be invalid")
	}
}

func TestSeverityOf(t *testing.T) {
	cases := map[IssueKind]Severity{
		IssueSpamWords:            SeverityHigh,
		IssueGrammarSpelling:      SeverityHigh,
		IssueClaimWithoutEvidence: SeverityMedium,
		IssueHardToRead:           SeverityMedium,
		IssueEmojiExcess:          SeverityMedium,
		IssueFluff:                SeverityLow,
		IssueHedging:              SeverityLow,
		IssueVagueDate:            SeverityLow,
		IssueVagueNumber:          SeverityLow,
		IssueCTA:                  SeverityInformational,
	}

	for kind, want := range cases {
		if got := SeverityOf(kind); got != want {
			t.Errorf("SeverityOf(%s) = %s, want %s", kind, got, want)
		}
	}

	if got := SeverityOf(IssueKind("unknown")); got != SeverityInformational {
		t.Errorf("expected unknown kind to map to informational, got %s", got)
	}
}

func TestSeverityRank(t *testing.T) {
	if SeverityHigh.Rank() <= SeverityMedium.Rank() {
		t.Error("high should outrank medium")
	}
	if SeverityMedium.Rank() <= SeverityLow.Rank() {
		t.Error("medium should outrank low")
	}
	if SeverityLow.Rank() <= SeverityInformational.Rank() {
		t.Error("low should outrank informational")
	}
}

func TestFindingJSONRoundTrip(t *testing.T) {
	findings := []Finding{
		{Kind: IssueSpamWords, SentenceIndex: 0, Start: 0, End: 7,
			Detail: SpamWordsDetail{Phrases: []string{"act now"}}},
		{Kind: IssueGrammarSpelling, SentenceIndex: 0, Start: 8, End: 15,
			Detail: GrammarDetail{RepeatedWord: "the", Heuristic: "repeated word"}},
		{Kind: IssueClaimWithoutEvidence, SentenceIndex: 1, Start: 0, End: 4,
			Detail: ClaimDetail{Trigger: "best"}},
		{Kind: IssueHardToRead, SentenceIndex: 1, Start: 0, End: 120,
			Detail: HardToReadDetail{WordCount: 31, Threshold: 25}},
		{Kind: IssueFluff, SentenceIndex: 2, Start: 10, End: 22,
			Detail: FluffDetail{Phrase: "really great"}},
		{Kind: IssueHedging, SentenceIndex: 2, Start: 30, End: 35,
			Detail: HedgingDetail{Word: "might"}},
		{Kind: IssueVagueDate, SentenceIndex: 3, Start: 0, End: 4,
			Detail: VagueDetail{Phrase: "soon"}},
		{Kind: IssueVagueNumber, SentenceIndex: 3, Start: 10, End: 14,
			Detail: VagueDetail{Phrase: "many"}},
		{Kind: IssueEmojiExcess, SentenceIndex: 4, Start: 0, End: 20,
			Detail: EmojiExcessDetail{Count: 3, Threshold: 2}},
		{Kind: IssueCTA, SentenceIndex: 5, Start: 0, End: 9,
			Detail: CTADetail{Verb: "subscribe"}},
	}

	for _, f := range findings {
		data, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("marshal %s: %v", f.Kind, err)
		}

		var got Finding
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", f.Kind, err)
		}
		if !reflect.DeepEqual(got, f) {
			t.Errorf("round trip %s:\n got %#v\nwant %#v", f.Kind, got, f)
		}
	}
}

func TestFindingUnmarshalNoDetail(t *testing.T) {
	var got Finding
	if err := json.Unmarshal([]byte(`{"kind":"fluff","sentence_index":0,"start":3,"end":9}`), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Detail != nil {
		t.Errorf("expected nil detail, got %#v", got.Detail)
	}

	if err := json.Unmarshal([]byte(`{"kind":"fluff","start":3,"end":9,"detail":null}`), &got); err != nil {
		t.Fatalf("unmarshal null detail: %v", err)
	}
	if got.Detail != nil {
		t.Errorf("expected nil detail for null, got %#v", got.Detail)
	}
}

func TestFindingUnmarshalUnknownKind(t *testing.T) {
	var got Finding
	err := json.Unmarshal([]byte(`{"kind":"passive_voice","start":0,"end":4,"detail":{"x":1}}`), &got)
	if err == nil {
		t.Error("expected error for unknown kind with detail payload")
	}
}

func TestRuleOptionsNormalized(t *testing.T) {
	opts := RuleOptions{}.Normalized()

	if opts.HardToReadWordLimit != DefaultHardToReadWordLimit {
		t.Errorf("expected default word limit %d, got %d", DefaultHardToReadWordLimit, opts.HardToReadWordLimit)
	}
	if opts.EmojiLimit != DefaultEmojiLimit {
		t.Errorf("expected default emoji limit %d, got %d", DefaultEmojiLimit, opts.EmojiLimit)
	}
	if opts.MinSpanLength != DefaultMinSpanLength {
		t.Errorf("expected default min span length %d, got %d", DefaultMinSpanLength, opts.MinSpanLength)
	}

	custom := RuleOptions{HardToReadWordLimit: 40, EmojiLimit: 5, MinSpanLength: 2}.Normalized()
	if custom.HardToReadWordLimit != 40 || custom.EmojiLimit != 5 || custom.MinSpanLength != 2 {
		t.Errorf("expected custom options preserved, got %+v", custom)
	}
}
