package routing

import (
	"testing"

	"github.com/hongjunna/toporider/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDensify(t *testing.T) {
	tests := []struct {
		name   string
		end    profile.LatLng
		points int
	}{
		{"same point uses minimum steps", profile.LatLng{Lat: 37.5, Lng: 127}, 3},
		{"short line uses minimum steps", profile.LatLng{Lat: 37.5005, Lng: 127}, 3},
		{"one hundredth degree", profile.LatLng{Lat: 37.51, Lng: 127}, 23},
		{"long line capped", profile.LatLng{Lat: 38.5, Lng: 127}, 101},
	}
	start := profile.LatLng{Lat: 37.5, Lng: 127}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Densify(start, tt.end)
			require.Len(t, got, tt.points)
			assert.Equal(t, start, got[0])
			assert.InDelta(t, tt.end.Lat, got[len(got)-1].Lat, 1e-12)
			assert.InDelta(t, tt.end.Lng, got[len(got)-1].Lng, 1e-12)
		})
	}
}

func TestDensifyEvenSpacing(t *testing.T) {
	got := Densify(profile.LatLng{Lat: 0, Lng: 0}, profile.LatLng{Lat: 0, Lng: 0.01})
	require.Greater(t, len(got), 3)
	step := got[1].Lng - got[0].Lng
	for i := 2; i < len(got); i++ {
		assert.InDelta(t, step, got[i].Lng-got[i-1].Lng, 1e-12)
	}
}
