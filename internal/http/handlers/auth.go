package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/komolbek/expostandai/internal/domain"
	"github.com/komolbek/expostandai/internal/middleware"
)

const sessionTTL = 7 * 24 * time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin verifies credentials and issues the signed session cookie.
func (a *App) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password are required")
		return
	}

	admin, err := a.Admins.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		a.Log.Error().Err(err).Msg("admin lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	token := middleware.SignSession(a.Cfg.SessionSecret, middleware.SessionClaims{
		Sub: admin.Email,
		Exp: time.Now().Add(sessionTTL).Unix(),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.Cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
	a.json(w, http.StatusOK, map[string]any{"success": true})
}

// AdminLogout clears the session cookie.
func (a *App) AdminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	a.json(w, http.StatusOK, map[string]any{"success": true})
}

// AdminMe reports the signed-in admin identity.
func (a *App) AdminMe(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"email": middleware.AdminEmailFromContext(r.Context())})
}
