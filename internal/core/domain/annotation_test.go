package domain

import "testing"

func TestAnnotatedSpanContains(t *testing.T) {
	outer := AnnotatedSpan{Kind: IssueFluff, Start: 5, End: 20}
	inner := AnnotatedSpan{Kind: IssueSpamWords, Start: 8, End: 12}

	if !outer.Contains(inner) {
		t.Error("expected outer to contain inner")
	}
	if inner.Contains(outer) {
		t.Error("expected inner not to contain outer")
	}
	if !outer.Contains(outer) {
		t.Error("expected a span to contain itself")
	}
}

func TestAnnotatedSpanOverlaps(t *testing.T) {
	a := AnnotatedSpan{Kind: IssueFluff, Start: 3, End: 16}
	b := AnnotatedSpan{Kind: IssueSpamWords, Start: 10, End: 16}
	c := AnnotatedSpan{Kind: IssueHedging, Start: 16, End: 22}

	if !a.Overlaps(b) {
		t.Error("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Error("adjacent spans must not count as overlapping")
	}
	if c.Overlaps(a) {
		t.Error("overlap must be symmetric")
	}
}

func TestAnalysisResultIssueCount(t *testing.T) {
	r := &AnalysisResult{
		Spans: []AnnotatedSpan{
			{Kind: IssueFluff, Start: 0, End: 5},
			{Kind: IssueCTA, Start: 10, End: 20},
		},
	}
	if r.IssueCount() != 2 {
		t.Errorf("expected 2 issues, got %d", r.IssueCount())
	}
}
