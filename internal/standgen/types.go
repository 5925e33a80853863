// Package standgen turns a structured stand inquiry into image generation
// prompts and drives the primary/fallback provider pipeline that renders
// booth visualizations.
package standgen

import (
	"context"
	"fmt"

	"github.com/komolbek/expostandai/internal/domain"
)

// Variant tags one of the parallel renders produced for a single inquiry.
type Variant string

const (
	VariantBase        Variant = "base"
	VariantAlternative Variant = "alternative"
	VariantPremium     Variant = "premium"
)

// Variants is the fixed ordered set attempted per batch.
var Variants = []Variant{VariantBase, VariantAlternative, VariantPremium}

// ParseVariant validates a caller-supplied variant tag, defaulting to base
// when empty.
func ParseVariant(raw string) (Variant, error) {
	switch Variant(raw) {
	case VariantBase, VariantAlternative, VariantPremium:
		return Variant(raw), nil
	case "":
		return VariantBase, nil
	default:
		return "", fmt.Errorf("standgen: unknown variant %q", raw)
	}
}

// GeneratedImage is one successful render.
type GeneratedImage struct {
	URL       string  `json:"url"`
	Variation Variant `json:"variation"`
}

// BatchResult is the outcome of one orchestration run. Images holds at least
// one entry; a batch with zero successes surfaces as an error instead.
type BatchResult struct {
	Images           []GeneratedImage `json:"images"`
	GenerationTimeMs int64            `json:"generationTime"`
}

// LogoAnalysis is the structured description a vision model extracted from an
// uploaded logo. It lives for one batch and is never persisted.
type LogoAnalysis struct {
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
	Style       string   `json:"style"`
	HasText     bool     `json:"hasText"`
	TextContent string   `json:"textContent,omitempty"`
}

// ImageClient renders a single image for a prompt and returns its URL.
type ImageClient interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// VisionClient answers a free-text instruction about an image reachable at an
// absolute URL.
type VisionClient interface {
	DescribeImage(ctx context.Context, imageURL, instruction string) (string, error)
}

// VariantError reports that both the primary and the fallback provider failed
// for one variant.
type VariantError struct {
	Variant  Variant
	Primary  error
	Fallback error
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("image generation failed for %s variant: primary: %v; fallback: %v", e.Variant, e.Primary, e.Fallback)
}

func (e *VariantError) Is(target error) bool {
	return target == domain.ErrProviderFailure
}

func (e *VariantError) Unwrap() []error {
	return []error{e.Primary, e.Fallback}
}
