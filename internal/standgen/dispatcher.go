package standgen

import (
	"context"
	"errors"
	"strings"

	"github.com/komolbek/expostandai/internal/infra"
)

// Dispatcher routes one prompt to the primary image provider and falls back
// to the secondary exactly once when the primary fails or returns no URL.
type Dispatcher struct {
	primary  ImageClient
	fallback ImageClient
	logger   infra.Logger
}

func NewDispatcher(primary, fallback ImageClient, logger infra.Logger) *Dispatcher {
	return &Dispatcher{primary: primary, fallback: fallback, logger: logger}
}

// Generate returns the rendered image URL for one variant, or a *VariantError
// once both providers have failed. The primary is never retried.
func (d *Dispatcher) Generate(ctx context.Context, prompt string, variant Variant) (string, error) {
	url, primaryErr := d.callProvider(ctx, d.primary, prompt)
	if primaryErr == nil {
		return url, nil
	}
	d.logger.Warn().Err(primaryErr).Str("variant", string(variant)).Msg("primary image provider failed, trying fallback")

	url, fallbackErr := d.callProvider(ctx, d.fallback, prompt)
	if fallbackErr == nil {
		return url, nil
	}
	return "", &VariantError{Variant: variant, Primary: primaryErr, Fallback: fallbackErr}
}

func (d *Dispatcher) callProvider(ctx context.Context, client ImageClient, prompt string) (string, error) {
	if client == nil {
		return "", errors.New("provider not configured")
	}
	url, err := client.GenerateImage(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(url) == "" {
		return "", errors.New("provider returned empty image url")
	}
	return url, nil
}
