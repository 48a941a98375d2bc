package validators

// IsValidLatLon bounds-checks a coordinate pair before it is persisted
// as a geofence center or accepted from a scan payload.
func IsValidLatLon(lat, lon float64) bool {
	if lat < -90 || lat > 90 {
		return false
	}
	if lon < -180 || lon > 180 {
		return false
	}
	return true
}

// IsValidRadius accepts any non-negative finite radius in meters.
func IsValidRadius(radiusMeters float64) bool {
	return radiusMeters >= 0
}
