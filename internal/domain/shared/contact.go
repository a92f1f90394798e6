package shared

import "strings"

// NormalizePhone trims a phone number and removes inner whitespace
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

// GeoPoint is a GPS position captured by the shopper's browser
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ErrInvalidGeoPoint is returned for coordinates outside the valid range
var ErrInvalidGeoPoint = NewDomainError("INVALID_GPS", "GPS coordinates are out of range")

// Validate checks latitude and longitude bounds
func (g GeoPoint) Validate() error {
	if g.Latitude < -90 || g.Latitude > 90 || g.Longitude < -180 || g.Longitude > 180 {
		return ErrInvalidGeoPoint
	}
	return nil
}
