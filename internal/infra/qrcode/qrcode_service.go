// Package qrcode generates share QR codes for product links.
package qrcode

import (
	"fmt"
	"strings"

	"souqlink/config"
	"souqlink/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	baseURL              string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch cfg.QRCode.ErrorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		baseURL:              strings.TrimRight(cfg.Platform.BaseURL, "/"),
		size:                 cfg.QRCode.Size,
		errorCorrectionLevel: level,
	}
}

// GenerateProductQR returns a PNG QR code encoding the product share URL.
func (s *qrcodeService) GenerateProductQR(productID uuid.UUID) ([]byte, error) {
	shareURL := fmt.Sprintf("%s/products/%s", s.baseURL, productID)

	png, err := qrcode.Encode(shareURL, s.errorCorrectionLevel, s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product QR: %w", err)
	}

	return png, nil
}
