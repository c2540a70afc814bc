package impl

import (
	"math"
	"testing"

	"pharmalink/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestDistanceService_DistanceKm(t *testing.T) {
	service := NewDistanceService()

	paris := usecase.Coordinates{Latitude: 48.8566, Longitude: 2.3522}
	lyon := usecase.Coordinates{Latitude: 45.7640, Longitude: 4.8357}
	marseille := usecase.Coordinates{Latitude: 43.2965, Longitude: 5.3698}

	assert.InDelta(t, 391.5, service.DistanceKm(paris, lyon), 1.0)
	assert.InDelta(t, 660.6, service.DistanceKm(paris, marseille), 1.5)
	assert.InDelta(t, 0.0, service.DistanceKm(paris, paris), 0.001)
}

func TestDistanceService_DistanceKm_Symmetric(t *testing.T) {
	service := NewDistanceService()

	paris := usecase.Coordinates{Latitude: 48.8566, Longitude: 2.3522}
	lyon := usecase.Coordinates{Latitude: 45.7640, Longitude: 4.8357}

	assert.InDelta(t, service.DistanceKm(paris, lyon), service.DistanceKm(lyon, paris), 0.001)
}

func TestDistanceService_DistanceKm_RoundedToOneDecimal(t *testing.T) {
	service := NewDistanceService()

	from := usecase.Coordinates{Latitude: 48.8566, Longitude: 2.3522}
	to := usecase.Coordinates{Latitude: 48.8600, Longitude: 2.3600}

	got := service.DistanceKm(from, to)
	assert.InDelta(t, got, math.Round(got*10)/10, 1e-9)
}
