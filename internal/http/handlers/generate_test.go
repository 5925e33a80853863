package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/infra"
	"github.com/komolbek/expostandai/internal/standgen"
)

type stubGenerator struct {
	result  *standgen.BatchResult
	image   *standgen.GeneratedImage
	err     error
	gotInq  domain.Inquiry
	variant standgen.Variant
}

func (s *stubGenerator) GenerateBatch(_ context.Context, inq domain.Inquiry) (*standgen.BatchResult, error) {
	s.gotInq = inq
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubGenerator) Regenerate(_ context.Context, inq domain.Inquiry, variant standgen.Variant) (*standgen.GeneratedImage, error) {
	s.gotInq = inq
	s.variant = variant
	if s.err != nil {
		return nil, s.err
	}
	return s.image, nil
}

func testApp(gen BatchGenerator) *App {
	return &App{
		Cfg: &infra.Config{
			SessionSecret:   "test-secret",
			GenerateTimeout: time.Minute,
		},
		Log:       zerolog.New(io.Discard),
		Generator: gen,
	}
}

func TestGenerateReturnsBatch(t *testing.T) {
	gen := &stubGenerator{result: &standgen.BatchResult{
		Images: []standgen.GeneratedImage{
			{URL: "https://img/1.png", Variation: standgen.VariantBase},
			{URL: "https://img/2.png", Variation: standgen.VariantAlternative},
		},
		GenerationTimeMs: 48000,
	}}
	app := testApp(gen)

	body := `{"inquiryData":{"company_name":"Acme","stand_type":"corner","style":"minimal","width_meters":4,"length_meters":3}}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result standgen.BatchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Images) != 2 || result.GenerationTimeMs != 48000 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if gen.gotInq.CompanyName != "Acme" {
		t.Fatalf("generator received %+v", gen.gotInq)
	}
}

func TestGenerateRejectsMissingInquiryData(t *testing.T) {
	app := testApp(&stubGenerator{})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	app.Generate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGenerateRejectsInvalidInquiry(t *testing.T) {
	app := testApp(&stubGenerator{})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"inquiryData":{"company_name":""}}`))
	rec := httptest.NewRecorder()
	app.Generate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGenerateMapsAllVariantsFailed(t *testing.T) {
	app := testApp(&stubGenerator{err: domain.ErrAllVariantsFailed})
	body := `{"inquiryData":{"company_name":"Acme"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.Generate(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "generation_failed") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestRegenerateSingleVariant(t *testing.T) {
	gen := &stubGenerator{image: &standgen.GeneratedImage{URL: "https://img/r.png", Variation: standgen.VariantPremium}}
	app := testApp(gen)

	body := `{"inquiryData":{"company_name":"Acme"},"variation":"premium"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate/regenerate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.Regenerate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gen.variant != standgen.VariantPremium {
		t.Fatalf("variant = %q", gen.variant)
	}
}

func TestRegenerateRejectsUnknownVariant(t *testing.T) {
	app := testApp(&stubGenerator{})
	body := `{"inquiryData":{"company_name":"Acme"},"variation":"deluxe"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate/regenerate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.Regenerate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
