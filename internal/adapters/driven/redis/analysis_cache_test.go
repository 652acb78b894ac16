package redis

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

func TestAnalysisCache_SetAndGet(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnalysisCache(client)
	ctx := context.Background()

	result := &domain.AnalysisResult{
		AnnotatedText: "This is a <fluff>really great</fluff> deal.",
		Spans: []domain.AnnotatedSpan{
			{Kind: domain.IssueFluff, Start: 10, End: 22},
		},
	}

	if err := cache.Set(ctx, "key-1", result, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cache.Get(ctx, "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AnnotatedText != result.AnnotatedText {
		t.Errorf("expected annotated text %q, got %q", result.AnnotatedText, got.AnnotatedText)
	}
	if len(got.Spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(got.Spans))
	}
	if got.Spans[0].Kind != domain.IssueFluff || got.Spans[0].Start != 10 || got.Spans[0].End != 22 {
		t.Errorf("unexpected span: %+v", got.Spans[0])
	}
}

func TestAnalysisCache_DetailRoundTrip(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnalysisCache(client)
	ctx := context.Background()

	// Findings carry kind-specific detail variants behind an interface;
	// the cache must restore them, not just the flat span fields.
	result := &domain.AnalysisResult{
		AnnotatedText: "This is a <fluff>really great</fluff> deal.",
		Spans: []domain.AnnotatedSpan{
			{Kind: domain.IssueFluff, Start: 10, End: 22},
		},
		DocumentLevel: []domain.Finding{
			{Kind: domain.IssueEmojiExcess, SentenceIndex: -1, Start: 0, End: 43,
				Detail: domain.EmojiExcessDetail{Count: 3, Threshold: 2}},
		},
		PerSentence: []domain.SentenceIssues{
			{
				SentenceText: "This is a really great deal.",
				Start:        0,
				End:          28,
				Kinds:        []domain.IssueKind{domain.IssueFluff},
				Findings: []domain.Finding{
					{Kind: domain.IssueFluff, SentenceIndex: 0, Start: 10, End: 22,
						Detail: domain.FluffDetail{Phrase: "really great"}},
				},
			},
		},
	}

	if err := cache.Set(ctx, "key-1", result, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cache.Get(ctx, "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, result) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, result)
	}
}

func TestAnalysisCache_GetMiss(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnalysisCache(client)
	ctx := context.Background()

	if _, err := cache.Get(ctx, "missing"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalysisCache_Delete(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnalysisCache(client)
	ctx := context.Background()

	result := &domain.AnalysisResult{AnnotatedText: "Clean text."}
	_ = cache.Set(ctx, "key-1", result, time.Hour)

	if err := cache.Delete(ctx, "key-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.Get(ctx, "key-1"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAnalysisCache_TTLExpiry(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnalysisCache(client)
	ctx := context.Background()

	result := &domain.AnalysisResult{AnnotatedText: "Clean text."}
	_ = cache.Set(ctx, "key-1", result, time.Minute)

	mr.FastForward(2 * time.Minute)

	if _, err := cache.Get(ctx, "key-1"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after TTL, got %v", err)
	}
}
