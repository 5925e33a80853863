package standgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/komolbek/expostandai/internal/domain"
)

// scriptedClient replays one outcome per call, repeating the last entry once
// the script is exhausted.
type scriptedClient struct {
	script  []outcome
	calls   int
	prompts []string
}

type outcome struct {
	url string
	err error
}

func (c *scriptedClient) GenerateImage(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	idx := c.calls
	if idx >= len(c.script) {
		idx = len(c.script) - 1
	}
	c.calls++
	out := c.script[idx]
	return out.url, out.err
}

func succeedWith(urls ...string) *scriptedClient {
	c := &scriptedClient{}
	for _, u := range urls {
		c.script = append(c.script, outcome{url: u})
	}
	return c
}

func alwaysFail(msg string) *scriptedClient {
	return &scriptedClient{script: []outcome{{err: errors.New(msg)}}}
}

func TestDispatcherUsesPrimaryFirst(t *testing.T) {
	primary := succeedWith("https://img.example.com/a.png")
	fallback := succeedWith("https://img.example.com/b.webp")
	d := NewDispatcher(primary, fallback, testLogger())

	url, err := d.Generate(context.Background(), "prompt", VariantBase)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if url != "https://img.example.com/a.png" {
		t.Fatalf("url = %q", url)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback called %d times despite primary success", fallback.calls)
	}
}

func TestDispatcherFallsBackExactlyOnce(t *testing.T) {
	primary := alwaysFail("quota exceeded")
	fallback := succeedWith("https://img.example.com/b.webp")
	d := NewDispatcher(primary, fallback, testLogger())

	url, err := d.Generate(context.Background(), "prompt", VariantAlternative)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if url != "https://img.example.com/b.webp" {
		t.Fatalf("url = %q", url)
	}
	if primary.calls != 1 {
		t.Fatalf("primary called %d times, want exactly 1", primary.calls)
	}
	if fallback.calls != 1 {
		t.Fatalf("fallback called %d times, want exactly 1", fallback.calls)
	}
}

func TestDispatcherTreatsEmptyURLAsFailure(t *testing.T) {
	primary := succeedWith("")
	fallback := succeedWith("https://img.example.com/b.webp")
	d := NewDispatcher(primary, fallback, testLogger())

	url, err := d.Generate(context.Background(), "prompt", VariantBase)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if url != "https://img.example.com/b.webp" {
		t.Fatalf("empty primary URL should trigger fallback, got %q", url)
	}
}

func TestDispatcherAggregatesBothFailures(t *testing.T) {
	primary := alwaysFail("primary down")
	fallback := alwaysFail("fallback down")
	d := NewDispatcher(primary, fallback, testLogger())

	_, err := d.Generate(context.Background(), "prompt", VariantPremium)
	if err == nil {
		t.Fatalf("expected an error when both providers fail")
	}
	var variantErr *VariantError
	if !errors.As(err, &variantErr) {
		t.Fatalf("error is %T, want *VariantError", err)
	}
	if variantErr.Variant != VariantPremium {
		t.Fatalf("variant = %q", variantErr.Variant)
	}
	if !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("error should match ErrProviderFailure: %v", err)
	}
	if !strings.Contains(err.Error(), "primary down") || !strings.Contains(err.Error(), "fallback down") {
		t.Fatalf("error should carry both causes: %v", err)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("calls primary=%d fallback=%d, want 1/1", primary.calls, fallback.calls)
	}
}
