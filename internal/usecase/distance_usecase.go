package usecase

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceUsecase computes display distances between coordinates. The
// database remains the single authority for eligibility; this exists for
// presentation only.
type DistanceUsecase interface {
	// DistanceKm returns the great-circle distance in kilometers, rounded to
	// one decimal.
	DistanceKm(from, to Coordinates) float64
}
