package util

import (
	"github.com/golang/geo/s2"
)

// ValidLatLng reports whether lat/lng (degrees) lie within [-90, 90] and [-180, 180].
func ValidLatLng(lat, lng float64) bool {
	return s2.LatLngFromDegrees(lat, lng).IsValid()
}
