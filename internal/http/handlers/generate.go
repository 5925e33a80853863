package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/providers/openai"
	"github.com/komolbek/expostandai/internal/providers/replicate"
	"github.com/komolbek/expostandai/internal/standgen"
)

type generateRequest struct {
	InquiryData *domain.Inquiry `json:"inquiryData"`
	Variation   string          `json:"variation,omitempty"`
}

// Generate renders the three-variant image batch for the collected
// requirements. The whole batch shares one wall-clock budget.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.InquiryData == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "no inquiry data provided")
		return
	}
	if err := req.InquiryData.Validate(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.Cfg.GenerateTimeout)
	defer cancel()

	result, err := a.Generator.GenerateBatch(ctx, *req.InquiryData)
	if err != nil {
		a.generateError(w, err)
		return
	}
	a.json(w, http.StatusOK, result)
}

// Regenerate renders one additional image for a single variant.
func (a *App) Regenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.InquiryData == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "no inquiry data provided")
		return
	}
	variant, err := standgen.ParseVariant(req.Variation)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.Cfg.GenerateTimeout)
	defer cancel()

	image, err := a.Generator.Regenerate(ctx, *req.InquiryData, variant)
	if err != nil {
		a.generateError(w, err)
		return
	}
	a.json(w, http.StatusOK, image)
}

func (a *App) generateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, openai.ErrMissingAPIKey), errors.Is(err, replicate.ErrMissingAPIToken):
		a.error(w, http.StatusServiceUnavailable, "provider_not_configured", "image generation is not configured")
	case errors.Is(err, domain.ErrAllVariantsFailed):
		a.error(w, http.StatusBadGateway, "generation_failed", "failed to generate images")
	case errors.Is(err, domain.ErrProviderFailure):
		a.error(w, http.StatusBadGateway, "generation_failed", "failed to generate image")
	case errors.Is(err, context.DeadlineExceeded):
		a.error(w, http.StatusGatewayTimeout, "generation_timeout", "image generation timed out")
	default:
		a.Log.Error().Err(err).Msg("generation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to generate images")
	}
}
