// Package geoip resolves the submitting client's country from a MaxMind
// database so inquiries can be segmented by market in the admin dashboard.
package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when no database was configured.
var ErrUnavailable = errors.New("geoip: resolver unavailable")

// CountryResolver resolves ISO 3166-1 alpha-2 country codes from IPs.
type CountryResolver interface {
	CountryCode(ip string) (string, error)
}

type Resolver struct {
	reader *geoip2.Reader
}

// NewResolver opens the GeoIP2 country database at path. An empty path is
// not an error: it returns a nil resolver and country detection falls back
// to proxy headers only.
func NewResolver(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// CountryCode returns the uppercase ISO code for ip, or "" when the address
// is not in the database.
func (r *Resolver) CountryCode(ip string) (string, error) {
	if r == nil || r.reader == nil {
		return "", ErrUnavailable
	}
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "", fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup country: %w", err)
	}
	if record == nil || record.Country.IsoCode == "" {
		return "", nil
	}
	return strings.ToUpper(record.Country.IsoCode), nil
}

func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}

var _ CountryResolver = (*Resolver)(nil)
