// Package entity contains the core business objects of the project.
package entity

// CreatorType identifies the recruiter-side actor that originates an alert
// or a mission.
type CreatorType string

const (
	// CreatorTypePharmacy indicates a pharmacy owner.
	CreatorTypePharmacy CreatorType = "pharmacy"
	// CreatorTypeLaboratory indicates a laboratory.
	CreatorTypeLaboratory CreatorType = "laboratory"
)

// String returns the string representation of the CreatorType.
func (c CreatorType) String() string {
	return string(c)
}

// IsValid checks if the CreatorType is a valid value.
func (c CreatorType) IsValid() bool {
	switch c {
	case CreatorTypePharmacy, CreatorTypeLaboratory:
		return true
	default:
		return false
	}
}
