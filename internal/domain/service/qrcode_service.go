package service

import "github.com/google/uuid"

// QRCodeService generates share QR codes for product links, which marketers
// distribute to customers.
type QRCodeService interface {
	// GenerateProductQR returns a PNG QR code encoding the product share URL.
	GenerateProductQR(productID uuid.UUID) ([]byte, error)
}
