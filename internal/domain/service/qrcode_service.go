package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateAlertQR generates a QR code that deep-links to an urgent alert
	GenerateAlertQR(alertID uuid.UUID) ([]byte, error)

	// ParseAlertQR parses QR code data and returns the alert ID
	ParseAlertQR(qrData string) (uuid.UUID, error)
}
