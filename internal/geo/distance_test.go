package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	points := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 1.2839, Longitude: 103.8436},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 89.9, Longitude: -179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p, p))
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := [][2]Point{
		{{Latitude: 48.8566, Longitude: 2.3522}, {Latitude: 51.5074, Longitude: -0.1278}},
		{{Latitude: 1.2839, Longitude: 103.8436}, {Latitude: 1.3048, Longitude: 103.8318}},
		{{Latitude: -90, Longitude: 0}, {Latitude: 90, Longitude: 0}},
	}
	for _, pair := range pairs {
		assert.Equal(t, DistanceKm(pair[0], pair[1]), DistanceKm(pair[1], pair[0]))
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	// Paris to London is roughly 343 km great-circle.
	paris := Point{Latitude: 48.8566, Longitude: 2.3522}
	london := Point{Latitude: 51.5074, Longitude: -0.1278}
	assert.InDelta(t, 343.5, DistanceKm(paris, london), 3.0)

	// Pole to pole is half the circumference.
	north := Point{Latitude: 90, Longitude: 0}
	south := Point{Latitude: -90, Longitude: 0}
	assert.InDelta(t, 20015.1, DistanceKm(north, south), 1.0)
}

func TestPoint_Valid(t *testing.T) {
	assert.True(t, Point{Latitude: 0, Longitude: 0}.Valid())
	assert.True(t, Point{Latitude: -90, Longitude: 180}.Valid())
	assert.False(t, Point{Latitude: 90.1, Longitude: 0}.Valid())
	assert.False(t, Point{Latitude: 0, Longitude: -180.5}.Valid())
}
