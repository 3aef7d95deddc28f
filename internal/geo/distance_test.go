package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(-6.2, 106.8, -6.2, 106.8))
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{-6.2088, 106.8456, -6.9175, 107.6191}, // Jakarta - Bandung
		{-7.2575, 112.7521, -6.2088, 106.8456}, // Surabaya - Jakarta
		{0, 0, 51.5, -0.12},
		{-90, 0, 90, 0},
	}
	for _, p := range pairs {
		d1 := Distance(p[0], p[1], p[2], p[3])
		d2 := Distance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, d1, d2, 1e-9)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Jakarta to Bandung is roughly 120 km as the crow flies.
	d := Distance(-6.2088, 106.8456, -6.9175, 107.6191)
	assert.InDelta(t, 118, d, 5)
}

func TestDistanceAntipodal(t *testing.T) {
	// Half the Earth's circumference, ~20015 km.
	d := Distance(0, 0, 0, 180)
	assert.InDelta(t, 20015, d, 10)
}
