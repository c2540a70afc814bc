package entity

import "github.com/google/uuid"

// EligibleCandidate is a candidate returned by the geographic eligibility
// query, bundled with the distance to the alert location so fan-out does not
// need an N+1 lookup. DistanceKm is rounded to one decimal for display.
type EligibleCandidate struct {
	UserID     uuid.UUID    `json:"user_id"`
	Position   PositionType `json:"position"`
	Latitude   float64      `json:"latitude"`
	Longitude  float64      `json:"longitude"`
	DistanceKm float64      `json:"distance_km"`
}
