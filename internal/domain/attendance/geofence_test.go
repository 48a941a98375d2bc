package attendance

import "testing"

func f64(v float64) *float64 { return &v }

func TestWithinFence(t *testing.T) {
	clinic := Coordinate{Lat: 37.5, Lon: 127.0}
	// roughly 200 m north of the clinic
	farAway := Coordinate{Lat: 37.5018, Lon: 127.0}

	tests := []struct {
		name     string
		reported *Coordinate
		center   *Coordinate
		radius   *float64
		required bool
		want     GeoDecision
	}{
		{"no center disables check", &farAway, nil, f64(50), false, GeoSkip},
		{"no radius disables check", &farAway, &clinic, nil, false, GeoSkip},
		{"missing report is advisory", nil, &clinic, f64(50), false, GeoSkip},
		{"missing report fails when required", nil, &clinic, f64(50), true, GeoFail},
		{"same point always passes", &clinic, &clinic, f64(0), false, GeoPass},
		{"200m away outside 50m fence", &farAway, &clinic, f64(50), false, GeoFail},
		{"200m away inside 500m fence", &farAway, &clinic, f64(500), false, GeoPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithinFence(tt.reported, tt.center, tt.radius, tt.required)
			if got != tt.want {
				t.Errorf("WithinFence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHaversineMeters(t *testing.T) {
	clinic := Coordinate{Lat: 37.5, Lon: 127.0}

	if d := HaversineMeters(clinic, clinic); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}

	// 0.0018 degrees of latitude is about 200 m on the mean sphere
	d := HaversineMeters(clinic, Coordinate{Lat: 37.5018, Lon: 127.0})
	if d < 190 || d > 210 {
		t.Errorf("distance = %f, want about 200", d)
	}
}
