// Package entity contains the core business objects of the project.
package entity

// PositionType identifies the worker-side profile an alert targets.
type PositionType string

const (
	// PositionPreparateur indicates a pharmacy preparer.
	PositionPreparateur PositionType = "preparateur"
	// PositionConseiller indicates a dermo-cosmetic advisor.
	PositionConseiller PositionType = "conseiller"
	// PositionEtudiant indicates a pharmacy student.
	PositionEtudiant PositionType = "etudiant"
	// PositionAnimateur indicates a freelance animator. Laboratory alerts
	// always target this position.
	PositionAnimateur PositionType = "animateur"
)

// String returns the string representation of the PositionType.
func (p PositionType) String() string {
	return string(p)
}

// IsValid checks if the PositionType is a valid value.
func (p PositionType) IsValid() bool {
	switch p {
	case PositionPreparateur, PositionConseiller, PositionEtudiant, PositionAnimateur:
		return true
	default:
		return false
	}
}
