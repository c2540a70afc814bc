package impl

import (
	"math"

	"pharmalink/internal/usecase"
)

const earthRadiusKm = 6371.0

type distanceService struct{}

// NewDistanceService creates a haversine-based distance calculator.
func NewDistanceService() usecase.DistanceUsecase {
	return &distanceService{}
}

// DistanceKm computes the great-circle distance between two WGS84 points,
// rounded to one decimal for display.
func (s *distanceService) DistanceKm(from, to usecase.Coordinates) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*10) / 10
}
