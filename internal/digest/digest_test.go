package digest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"contract-backend/internal/ingestions"
	"contract-backend/internal/report"
)

func aiExtraction(i int, title, category, text string) report.ClauseExtraction {
	return report.ClauseExtraction{
		ID:           fmt.Sprintf("extraction-%d", i),
		ClauseID:     fmt.Sprintf("clause-%d", i),
		Title:        title,
		Category:     category,
		OriginalText: text,
		Metadata:     map[string]string{"source": "ai"},
	}
}

func sampleExtractions() []report.ClauseExtraction {
	return []report.ClauseExtraction{
		aiExtraction(1, "Limitation of Liability", "liability", "The aggregate liability of either party is capped at the fees paid in the preceding twelve months."),
		aiExtraction(2, "Payment Terms", "payment", "The client shall pay all invoices within thirty days of receipt of a correct invoice."),
		aiExtraction(3, "Confidentiality", "confidentiality", "Each party shall keep the other party's confidential information secret and secure at all times."),
	}
}

func TestBuildDigest(t *testing.T) {
	d := Build(sampleExtractions())
	if d.Total != 3 {
		t.Fatalf("total = %d", d.Total)
	}
	if d.CategoryCounts["liability"] != 1 || d.CategoryCounts["payment"] != 1 {
		t.Fatalf("counts = %v", d.CategoryCounts)
	}
	if !strings.Contains(d.Summary, "clause-1 | liability | Limitation of Liability") {
		t.Fatalf("summary = %q", d.Summary)
	}
}

func TestBuildDigestIdempotent(t *testing.T) {
	a := Build(sampleExtractions())
	b := Build(sampleExtractions())
	if a.Summary != b.Summary || a.Total != b.Total || !reflect.DeepEqual(a.CategoryCounts, b.CategoryCounts) {
		t.Fatalf("digest not idempotent: %+v vs %+v", a, b)
	}
}

func TestBuildDigestCapsLength(t *testing.T) {
	var many []report.ClauseExtraction
	for i := 0; i < 200; i++ {
		many = append(many, aiExtraction(i+1, fmt.Sprintf("Clause %d", i+1), "general", strings.Repeat("body text ", 20)))
	}
	d := Build(many)
	if len(d.Summary) > maxSummaryLength {
		t.Fatalf("summary length = %d", len(d.Summary))
	}
	if d.Total != 200 {
		t.Fatalf("total must count all extractions, got %d", d.Total)
	}
	counted := 0
	for _, n := range d.CategoryCounts {
		counted += n
	}
	if counted != d.Total {
		t.Fatalf("category counts sum to %d, want %d; truncating the summary must not drop counts", counted, d.Total)
	}
}

func TestIsWeakClauseSet(t *testing.T) {
	if IsWeakClauseSet(nil) != true {
		t.Fatalf("empty set must be weak")
	}
	if IsWeakClauseSet(sampleExtractions()) {
		t.Fatalf("healthy AI set must not be weak")
	}

	// No AI-sourced clauses.
	heuristic := sampleExtractions()
	for i := range heuristic {
		heuristic[i].Metadata = nil
	}
	if !IsWeakClauseSet(heuristic) {
		t.Fatalf("non-AI set must be weak")
	}

	// Stub excerpts.
	stubs := sampleExtractions()
	for i := range stubs {
		stubs[i].OriginalText = "short"
		stubs[i].NormalizedText = ""
	}
	if !IsWeakClauseSet(stubs) {
		t.Fatalf("stub-excerpt set must be weak")
	}

	// Repeated titles.
	repeated := []report.ClauseExtraction{}
	for i := 0; i < 6; i++ {
		repeated = append(repeated, aiExtraction(i+1, "Clause", "general", strings.Repeat("sufficiently long body text ", 3)))
	}
	if !IsWeakClauseSet(repeated) {
		t.Fatalf("low-diversity set must be weak")
	}
}

func TestServiceLookupAndStore(t *testing.T) {
	repo := ingestions.NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	text := "This agreement is between Acme Corp and Widget Inc and covers consulting services."
	if err := repo.Create(ctx, ingestions.Ingestion{ID: "ing-1", ExtractedText: text}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, ok := svc.Lookup(text, nil); ok {
		t.Fatalf("unexpected cache hit")
	}

	stored := svc.Store(ctx, "ing-1", text, sampleExtractions())
	if stored.Total != 3 {
		t.Fatalf("stored digest = %+v", stored)
	}

	got, ok := svc.Lookup(text, nil)
	if !ok || got.Summary != stored.Summary {
		t.Fatalf("cache miss after store")
	}

	// Persisted seed must be readable by a fresh service instance.
	ing, err := repo.Get(ctx, "ing-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	fresh := NewService(repo)
	got, ok = fresh.Lookup(text, &ing)
	if !ok || got.Total != 3 {
		t.Fatalf("read-through miss: ok=%v digest=%+v", ok, got)
	}

	// A different document bypasses the seed.
	if _, ok := fresh.Lookup("entirely different text for another document body", &ing); ok {
		t.Fatalf("stale seed served for changed content")
	}
}

type failingRepo struct {
	*ingestions.MemoryRepo
}

func (r *failingRepo) UpdateAnalysisSeed(ctx context.Context, id string, seed ingestions.AnalysisSeed, extractions []report.ClauseExtraction) error {
	return errors.New("datastore unavailable")
}

func TestServiceStoreSwallowsPersistenceFailure(t *testing.T) {
	svc := NewService(&failingRepo{ingestions.NewMemoryRepo()})
	text := "This agreement is between Acme Corp and Widget Inc and covers consulting services."

	d := svc.Store(context.Background(), "ing-1", text, sampleExtractions())
	if d.Total != 3 {
		t.Fatalf("digest = %+v", d)
	}
	if _, ok := svc.Lookup(text, nil); !ok {
		t.Fatalf("digest must still serve from memory after write failure")
	}
}
