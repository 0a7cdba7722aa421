package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ceylonstyle/salon-backend/internal/domain/geo"
)

func TestDistanceKmSamePoint(t *testing.T) {
	assert.Zero(t, geo.DistanceKm(6.9271, 79.8612, 6.9271, 79.8612))
}

func TestDistanceKmColomboToKandy(t *testing.T) {
	// Colombo Fort to Kandy city centre, roughly 94 km great-circle.
	d := geo.DistanceKm(6.9271, 79.8612, 7.2906, 80.6337)
	assert.InDelta(t, 94, d, 3)
}

func TestDistanceKmSymmetry(t *testing.T) {
	a := geo.DistanceKm(6.0535, 80.2210, 9.6615, 80.0255)
	b := geo.DistanceKm(9.6615, 80.0255, 6.0535, 80.2210)
	assert.InDelta(t, a, b, 1e-9)
}
