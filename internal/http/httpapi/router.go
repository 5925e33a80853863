package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/komolbek/expostandai/internal/http/handlers"
	"github.com/komolbek/expostandai/internal/middleware"
)

// NewRouter wires the public API, the admin surface and upload serving. Each
// abuse-prone endpoint carries its own rate budget.
func NewRouter(app *handlers.App, country middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Log),
		middleware.CORS(app.Cfg.AllowedOrigins),
		middleware.Geo(country),
	)

	generalLimit := middleware.RateLimit(100, time.Minute)
	generateLimit := middleware.RateLimit(2, time.Hour)
	submitLimit := middleware.RateLimit(20, time.Hour)
	loginLimit := middleware.RateLimit(5, 15*time.Minute)

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(generalLimit)

		r.With(generateLimit).Post("/generate", app.Generate)
		r.Post("/generate/regenerate", app.Regenerate)
		r.With(submitLimit).Post("/inquiry", app.SubmitInquiry)
		r.Post("/promo-code", app.ApplyPromoCode)
		r.Post("/upload", app.Upload)

		r.Route("/admin", func(r chi.Router) {
			r.With(loginLimit).Post("/login", app.AdminLogin)
			r.Post("/logout", app.AdminLogout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminSession(app.Cfg.SessionSecret))
				r.Get("/me", app.AdminMe)
				r.Get("/inquiries", app.ListInquiries)
				r.Get("/inquiries/{id}", app.GetInquiry)
				r.Patch("/inquiries/{id}", app.UpdateInquiry)
				r.Get("/inquiries/{id}/files.zip", app.DownloadInquiryFiles)
				r.Get("/promo-codes", app.ListPromoCodes)
				r.Post("/promo-codes", app.CreatePromoCode)
				r.Patch("/promo-codes/{id}", app.UpdatePromoCode)
			})
		})
	})

	r.Get("/uploads/*", app.ServeUpload)

	return r
}
