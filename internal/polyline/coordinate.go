package polyline

import "fmt"

// LatLngZ is a coordinate triple. Z is zero when no third dimension is encoded.
type LatLngZ struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	Z   float64 `json:"z"`
}

// LatLng builds a triple without a third dimension value.
func LatLng(lat, lng float64) LatLngZ {
	return LatLngZ{Lat: lat, Lng: lng}
}

func (c LatLngZ) String() string {
	return fmt.Sprintf("LatLngZ [lat=%v, lng=%v, z=%v]", c.Lat, c.Lng, c.Z)
}
