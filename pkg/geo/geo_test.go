package geo_test

import (
	"testing"

	"surplussaver/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func TestDistance_ZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, geo.Distance(51.5, -0.12, 51.5, -0.12), 1e-9)
}

func TestDistance_OneDegreeOfLongitudeAtEquator(t *testing.T) {
	// One degree along the equator is roughly 111.19 km.
	d := geo.Distance(0, 0, 0, 1)
	assert.InDelta(t, 111.19, d, 0.1)
}

func TestDistance_OneDegreeOfLatitude(t *testing.T) {
	d := geo.Distance(10, 20, 11, 20)
	assert.InDelta(t, 111.19, d, 0.1)
}

func TestDistance_Symmetric(t *testing.T) {
	a := geo.Distance(41.3, 69.2, 43.2, 76.9)
	b := geo.Distance(43.2, 76.9, 41.3, 69.2)
	assert.InDelta(t, a, b, 1e-9)
}

func TestDistance_KnownCityPair(t *testing.T) {
	// Tashkent to Samarkand is about 265 km as the crow flies.
	d := geo.Distance(41.2995, 69.2401, 39.6270, 66.9750)
	assert.InDelta(t, 265, d, 10)
}
