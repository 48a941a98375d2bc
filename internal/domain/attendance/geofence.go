package attendance

import "math"

// ===============================
// Geofence
// ===============================

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type GeoDecision string

const (
	GeoPass GeoDecision = "pass"
	GeoFail GeoDecision = "fail"
	GeoSkip GeoDecision = "skip"
)

// Mean Earth radius in meters.
const earthRadiusMeters = 6371000.0

// WithinFence validates a reported coordinate against a token's geofence.
// An unset center or radius disables the check entirely. A missing report
// is advisory only — the scan proceeds — unless the clinic marks location
// as required.
func WithinFence(reported, center *Coordinate, radiusMeters *float64, required bool) GeoDecision {
	if center == nil || radiusMeters == nil {
		return GeoSkip
	}
	if reported == nil {
		if required {
			return GeoFail
		}
		return GeoSkip
	}
	if HaversineMeters(*reported, *center) <= *radiusMeters {
		return GeoPass
	}
	return GeoFail
}

// HaversineMeters computes the great-circle distance between two points.
func HaversineMeters(p1, p2 Coordinate) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lon1 := p1.Lon * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lon2 := p2.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
