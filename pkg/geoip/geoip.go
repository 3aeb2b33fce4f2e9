// Package geoip resolves requester IP addresses to ISO country codes
// using a MaxMind GeoLite2/GeoIP2 Country (or City) database.
package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrNotFound is returned when the database has no country for an IP.
var ErrNotFound = errors.New("geoip: country not found")

// Resolver looks up the country of an IP address.
type Resolver struct {
	reader *geoip2.Reader
}

// Open opens the .mmdb file at path.
func Open(path string) (*Resolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open country database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// Close releases the database. It is safe on a nil Resolver.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}

// CountryCode returns the upper-case ISO 3166-1 alpha-2 code of ip.
func (r *Resolver) CountryCode(ipAddress string) (string, error) {
	ip := net.ParseIP(strings.TrimSpace(ipAddress))
	if ip == nil {
		return "", fmt.Errorf("geoip: invalid ip address %q", ipAddress)
	}
	if r == nil || r.reader == nil {
		return "", errors.New("geoip: resolver not open")
	}

	record, err := r.reader.Country(ip)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup %s: %w", ip, err)
	}
	if record.Country.IsoCode == "" {
		return "", ErrNotFound
	}
	return strings.ToUpper(record.Country.IsoCode), nil
}
