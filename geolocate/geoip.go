// Package geolocate resolves a client address to an approximate origin.
package geolocate

import (
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
)

var ErrUnknownLocation = errors.New("location unknown for address")

// Locator turns an IP address into a coordinate.
type Locator interface {
	Locate(ip string) (geo.Coordinate, error)
}

// cityReader is the part of *geoip2.Reader used here.
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
}

// GeoIP looks addresses up in a MaxMind GeoIP2/GeoLite2 City database.
type GeoIP struct {
	reader cityReader
	closer func() error
}

// OpenGeoIP memory-maps the database at path.
func OpenGeoIP(path string) (*GeoIP, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &GeoIP{reader: r, closer: r.Close}, nil
}

func (g *GeoIP) Close() error {
	if g.closer == nil {
		return nil
	}
	return g.closer()
}

func (g *GeoIP) Locate(ip string) (geo.Coordinate, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return geo.Coordinate{}, fmt.Errorf("invalid ip %q", ip)
	}
	rec, err := g.reader.City(parsed)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("geoip lookup %s: %w", ip, err)
	}
	// Unknown addresses come back as a zero record rather than an error.
	if rec.Location.Latitude == 0 && rec.Location.Longitude == 0 && rec.Location.AccuracyRadius == 0 {
		return geo.Coordinate{}, fmt.Errorf("%w %s", ErrUnknownLocation, ip)
	}
	return geo.Coordinate{Lat: rec.Location.Latitude, Lng: rec.Location.Longitude}, nil
}
