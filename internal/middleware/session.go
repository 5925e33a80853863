package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// SessionCookie is the cookie carrying the signed admin session token.
const SessionCookie = "expostand_session"

// SessionClaims identify a signed-in admin.
type SessionClaims struct {
	Sub string `json:"sub"`
	Exp int64  `json:"exp"`
}

type adminKey string

const adminEmailKey adminKey = "admin_email"

// SignSession produces a compact HMAC-SHA256 signed token for the claims.
func SignSession(secret string, claims SessionClaims) string {
	payload, _ := json.Marshal(claims)
	data := base64.RawURLEncoding.EncodeToString(payload)
	return data + "." + hmacSign(secret, data)
}

// VerifySession validates the token signature and expiry.
func VerifySession(secret, token string) (*SessionClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return nil, errors.New("invalid session token")
	}
	expected := hmacSign(secret, parts[0])
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return nil, errors.New("invalid session signature")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, err
	}
	var claims SessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	if claims.Exp != 0 && time.Now().Unix() > claims.Exp {
		return nil, errors.New("session expired")
	}
	return &claims, nil
}

func hmacSign(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// AdminSession guards admin routes behind the signed session cookie.
func AdminSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			claims, err := VerifySession(secret, cookie.Value)
			if err != nil {
				http.Error(w, "invalid session", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), adminEmailKey, claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminEmailFromContext returns the signed-in admin's email, or "".
func AdminEmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(adminEmailKey).(string); ok {
		return v
	}
	return ""
}
