package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type countryContextKey struct{}

var CountryKey = countryContextKey{}

// CountryLookup resolves an ISO country code for an IP address.
type CountryLookup func(ip string) (string, error)

// Geo tags each request context with the client's ISO country code so
// submitted inquiries can record where they came from. Proxy headers win over
// the GeoIP lookup; a failed lookup leaves the country empty.
func Geo(lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := ResolveCountry(r, lookup)
			if country != "" {
				ctx := context.WithValue(r.Context(), CountryKey, country)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ResolveCountry resolves a best-effort ISO country code for the request.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	for _, key := range []string{"X-Country-Code", "CF-IPCountry", "X-Appengine-Country"} {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" {
			return strings.ToUpper(val)
		}
	}
	if lookup == nil {
		return ""
	}
	ip := ClientIP(r)
	if ip == "" {
		return ""
	}
	country, err := lookup(ip)
	if err != nil {
		return ""
	}
	return strings.ToUpper(country)
}

// CountryFromContext returns the ISO country code stored by Geo, or "".
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
