package standgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/komolbek/expostandai/internal/domain"
)

func newTestOrchestrator(vision *stubVision, primary, fallback *scriptedClient) *Orchestrator {
	analyzer := NewLogoAnalyzer(vision, "https://expostand.example.com", testLogger())
	dispatcher := NewDispatcher(primary, fallback, testLogger())
	return NewOrchestrator(analyzer, dispatcher, testLogger())
}

func inquiryWithLogo() domain.Inquiry {
	inq := baseInquiry()
	inq.BrandFiles = []domain.UploadedFile{{Name: "logo.png", URL: "/uploads/logo.png", Type: "image/png"}}
	return inq
}

func TestGenerateBatchAllVariantsSucceed(t *testing.T) {
	vision := &stubVision{reply: `{"description":"red hexagon mark","colors":["red"],"style":"geometric","hasText":false}`}
	primary := succeedWith("https://img/1.png", "https://img/2.png", "https://img/3.png")
	fallback := alwaysFail("unused")
	o := newTestOrchestrator(vision, primary, fallback)

	result, err := o.GenerateBatch(context.Background(), inquiryWithLogo())
	if err != nil {
		t.Fatalf("generate batch: %v", err)
	}
	if len(result.Images) != 3 {
		t.Fatalf("images = %d, want 3", len(result.Images))
	}
	wantOrder := []Variant{VariantBase, VariantAlternative, VariantPremium}
	for i, img := range result.Images {
		if img.Variation != wantOrder[i] {
			t.Fatalf("image %d variation = %q, want %q", i, img.Variation, wantOrder[i])
		}
	}
	if result.GenerationTimeMs < 0 {
		t.Fatalf("generationTime = %d", result.GenerationTimeMs)
	}
	if vision.calls != 1 {
		t.Fatalf("vision analysis ran %d times, want once per batch", vision.calls)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback called %d times despite primary success", fallback.calls)
	}
	for _, prompt := range primary.prompts {
		if !strings.Contains(prompt, "red hexagon mark") {
			t.Fatalf("variant prompt missing shared logo description:\n%s", prompt)
		}
	}
}

func TestGenerateBatchPartialSuccess(t *testing.T) {
	primary := alwaysFail("primary down")
	fallback := &scriptedClient{script: []outcome{
		{url: "https://img/base.webp"},
		{err: errors.New("fallback down")},
		{err: errors.New("fallback down")},
	}}
	o := newTestOrchestrator(&stubVision{}, primary, fallback)

	inq := baseInquiry()
	result, err := o.GenerateBatch(context.Background(), inq)
	if err != nil {
		t.Fatalf("partial success must not fail the batch: %v", err)
	}
	if len(result.Images) != 1 {
		t.Fatalf("images = %d, want 1", len(result.Images))
	}
	if result.Images[0].Variation != VariantBase || result.Images[0].URL != "https://img/base.webp" {
		t.Fatalf("unexpected surviving image: %+v", result.Images[0])
	}
	if primary.calls != 3 {
		t.Fatalf("primary attempted %d times, want one per variant", primary.calls)
	}
}

func TestGenerateBatchAllVariantsFail(t *testing.T) {
	o := newTestOrchestrator(&stubVision{}, alwaysFail("primary down"), alwaysFail("fallback down"))

	_, err := o.GenerateBatch(context.Background(), baseInquiry())
	if !errors.Is(err, domain.ErrAllVariantsFailed) {
		t.Fatalf("error = %v, want ErrAllVariantsFailed", err)
	}
}

func TestGenerateBatchSkipsVisionWithoutLogo(t *testing.T) {
	vision := &stubVision{reply: `{"description":"should not be used"}`}
	primary := succeedWith("https://img/1.png")
	o := newTestOrchestrator(vision, primary, alwaysFail("unused"))

	inq := baseInquiry()
	inq.BrandFiles = nil
	if _, err := o.GenerateBatch(context.Background(), inq); err != nil {
		t.Fatalf("generate batch: %v", err)
	}
	if vision.calls != 0 {
		t.Fatalf("vision called %d times without a logo file", vision.calls)
	}
	if !strings.Contains(primary.prompts[0], "dominant visual feature") {
		t.Fatalf("prompt should use name-only branding:\n%s", primary.prompts[0])
	}
}

func TestGenerateBatchDegradedAnalysisUsesGenericLogoBranding(t *testing.T) {
	vision := &stubVision{err: errors.New("vision unavailable")}
	primary := succeedWith("https://img/1.png")
	o := newTestOrchestrator(vision, primary, alwaysFail("unused"))

	if _, err := o.GenerateBatch(context.Background(), inquiryWithLogo()); err != nil {
		t.Fatalf("generate batch: %v", err)
	}
	prompt := primary.prompts[0]
	if !strings.Contains(prompt, "logo is the PRIMARY visual element") {
		t.Fatalf("degraded analysis should keep the logo primary:\n%s", prompt)
	}
	if strings.Contains(prompt, "Logo appearance:") {
		t.Fatalf("degraded analysis must not embed a literal description:\n%s", prompt)
	}
}

func TestGenerateBatchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := newTestOrchestrator(&stubVision{}, succeedWith("https://img/1.png"), alwaysFail("unused"))

	if _, err := o.GenerateBatch(ctx, baseInquiry()); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestRegenerateSingleVariant(t *testing.T) {
	primary := succeedWith("https://img/regen.png")
	o := newTestOrchestrator(&stubVision{}, primary, alwaysFail("unused"))

	img, err := o.Regenerate(context.Background(), baseInquiry(), VariantPremium)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if img.URL != "https://img/regen.png" || img.Variation != VariantPremium {
		t.Fatalf("unexpected image: %+v", img)
	}
	if !strings.Contains(primary.prompts[0], "Premium upgraded version") {
		t.Fatalf("regenerated prompt missing variant note:\n%s", primary.prompts[0])
	}
}
