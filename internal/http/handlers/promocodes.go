package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/komolbek/expostandai/internal/domain"
)

type promoApplyRequest struct {
	Code string `json:"code"`
}

// ApplyPromoCode validates a client-entered promo code.
func (a *App) ApplyPromoCode(w http.ResponseWriter, r *http.Request) {
	var req promoApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "promo code is required")
		return
	}

	code, err := a.PromoCodes.GetByCode(r.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.json(w, http.StatusBadRequest, map[string]any{"valid": false, "error": "Промокод не найден"})
			return
		}
		a.Log.Error().Err(err).Msg("promo code lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to check promo code")
		return
	}
	if !code.Active {
		a.json(w, http.StatusBadRequest, map[string]any{"valid": false, "error": "Промокод деактивирован"})
		return
	}
	if code.ExpiresAt != nil && time.Now().After(*code.ExpiresAt) {
		a.json(w, http.StatusBadRequest, map[string]any{"valid": false, "error": "Срок действия промокода истёк"})
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"valid":            true,
		"discount_percent": code.DiscountPercent,
		"message":          fmt.Sprintf("Промокод применён! Ваша скидка %d%%.", code.DiscountPercent),
	})
}

type promoCreateRequest struct {
	Code            string     `json:"code"`
	DiscountPercent int        `json:"discount_percent"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// CreatePromoCode registers a new code from the admin screen.
func (a *App) CreatePromoCode(w http.ResponseWriter, r *http.Request) {
	var req promoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "code is required")
		return
	}
	if req.DiscountPercent < 1 || req.DiscountPercent > 100 {
		a.error(w, http.StatusBadRequest, "bad_request", "discount_percent must be between 1 and 100")
		return
	}

	code := &domain.PromoCode{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		ExpiresAt:       req.ExpiresAt,
	}
	if err := a.PromoCodes.Create(r.Context(), code); err != nil {
		a.Log.Error().Err(err).Msg("promo code insert failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create promo code")
		return
	}
	a.json(w, http.StatusCreated, code)
}

// ListPromoCodes returns all codes for the admin screen.
func (a *App) ListPromoCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := a.PromoCodes.List(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("promo code list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list promo codes")
		return
	}
	if codes == nil {
		codes = []domain.PromoCode{}
	}
	a.json(w, http.StatusOK, map[string]any{"promo_codes": codes})
}

type promoUpdateRequest struct {
	Active *bool `json:"active"`
}

// UpdatePromoCode toggles a code's active flag.
func (a *App) UpdatePromoCode(w http.ResponseWriter, r *http.Request) {
	var req promoUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "active flag is required")
		return
	}
	if err := a.PromoCodes.SetActive(r.Context(), chi.URLParam(r, "id"), *req.Active); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "promo code not found")
			return
		}
		a.Log.Error().Err(err).Msg("promo code update failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update promo code")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true})
}
