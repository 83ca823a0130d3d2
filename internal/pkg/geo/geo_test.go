package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{name: "same point", lat1: 30.0444, lon1: 31.2357, lat2: 30.0444, lon2: 31.2357, want: 0, tolerance: 0.001},
		{name: "cairo to khartoum", lat1: 30.0444, lon1: 31.2357, lat2: 15.5007, lon2: 32.5599, want: 1622760, tolerance: 2000},
		{name: "one degree latitude at equator", lat1: 0, lon1: 0, lat2: 1, lon2: 0, want: 111195, tolerance: 10},
		{name: "short hop across campus", lat1: 30.04440, lon1: 31.23570, lat2: 30.04530, lon2: 31.23570, want: 100.07, tolerance: 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.tolerance)
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	d1 := Distance(30.0444, 31.2357, 15.5007, 32.5599)
	d2 := Distance(15.5007, 32.5599, 30.0444, 31.2357)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("Distance() not symmetric: %v vs %v", d1, d2)
	}
}

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{name: "valid", lat: 30.0444, lon: 31.2357, want: true},
		{name: "boundary poles", lat: 90, lon: 180, want: true},
		{name: "boundary negative", lat: -90, lon: -180, want: true},
		{name: "latitude too high", lat: 90.0001, lon: 0, want: false},
		{name: "longitude too low", lat: 0, lon: -180.0001, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCoordinates(tt.lat, tt.lon))
		})
	}
}
