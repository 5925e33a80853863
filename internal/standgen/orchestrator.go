package standgen

import (
	"context"
	"time"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/infra"
)

// Orchestrator runs one generation batch: a single optional logo analysis
// followed by a sequential render of the fixed variant set. Variants run one
// at a time because the primary provider limits in-flight requests per
// caller.
type Orchestrator struct {
	analyzer   *LogoAnalyzer
	dispatcher *Dispatcher
	logger     infra.Logger
	now        func() time.Time
}

func NewOrchestrator(analyzer *LogoAnalyzer, dispatcher *Dispatcher, logger infra.Logger) *Orchestrator {
	return &Orchestrator{
		analyzer:   analyzer,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// GenerateBatch renders all variants for one inquiry. Per-variant failures
// are logged and skipped; the batch fails with ErrAllVariantsFailed only when
// nothing rendered at all.
func (o *Orchestrator) GenerateBatch(ctx context.Context, inq domain.Inquiry) (*BatchResult, error) {
	start := o.now()

	logo := o.analyzeLogo(ctx, inq)

	images := make([]GeneratedImage, 0, len(Variants))
	for _, variant := range Variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prompt := BuildPrompt(inq, variant, logo)
		url, err := o.dispatcher.Generate(ctx, prompt, variant)
		if err != nil {
			o.logger.Error().Err(err).Str("variant", string(variant)).Msg("variant generation failed")
			continue
		}
		o.logger.Info().Str("variant", string(variant)).Str("url", url).Msg("variant generated")
		images = append(images, GeneratedImage{URL: url, Variation: variant})
	}

	elapsed := o.now().Sub(start)
	if len(images) == 0 {
		return nil, domain.ErrAllVariantsFailed
	}
	return &BatchResult{
		Images:           images,
		GenerationTimeMs: elapsed.Milliseconds(),
	}, nil
}

// Regenerate renders a single additional image for one variant, reusing the
// same analysis and dispatch path as a full batch.
func (o *Orchestrator) Regenerate(ctx context.Context, inq domain.Inquiry, variant Variant) (*GeneratedImage, error) {
	logo := o.analyzeLogo(ctx, inq)
	prompt := BuildPrompt(inq, variant, logo)
	url, err := o.dispatcher.Generate(ctx, prompt, variant)
	if err != nil {
		return nil, err
	}
	return &GeneratedImage{URL: url, Variation: variant}, nil
}

// analyzeLogo runs the vision analysis once per batch when a qualifying logo
// upload exists. A degraded or failed analysis yields nil so prompt building
// falls back to the generic logo-primary branding branch.
func (o *Orchestrator) analyzeLogo(ctx context.Context, inq domain.Inquiry) *LogoAnalysis {
	file, ok := FindLogoFile(inq.BrandFiles)
	if !ok || o.analyzer == nil {
		return nil
	}
	analysis, ok := o.analyzer.Analyze(ctx, file)
	if !ok {
		o.logger.Warn().Str("file", file.Name).Msg("proceeding with generic logo branding")
		return nil
	}
	return &analysis
}
