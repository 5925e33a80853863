// Package handlers implements the JSON API: public generation and inquiry
// submission endpoints plus the session-guarded admin surface.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/infra"
	"github.com/komolbek/expostandai/internal/notify"
	"github.com/komolbek/expostandai/internal/standgen"
	"github.com/komolbek/expostandai/internal/storage"
)

// BatchGenerator is the generation pipeline surface the handlers depend on.
type BatchGenerator interface {
	GenerateBatch(ctx context.Context, inq domain.Inquiry) (*standgen.BatchResult, error)
	Regenerate(ctx context.Context, inq domain.Inquiry, variant standgen.Variant) (*standgen.GeneratedImage, error)
}

// App bundles the handler dependencies.
type App struct {
	Cfg        *infra.Config
	Log        infra.Logger
	Inquiries  domain.InquiryRepository
	PromoCodes domain.PromoCodeRepository
	Admins     domain.AdminRepository
	Generator  BatchGenerator
	Files      *storage.FileStore
	Notifier   *notify.Service
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}
