package qrcode

import (
	"bytes"
	"testing"

	"souqlink/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PNG magic bytes.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47}

func TestGenerateProductQR_ReturnsPNG(t *testing.T) {
	cfg := &config.Config{}
	cfg.Platform.BaseURL = "https://souqlink.example/"
	cfg.QRCode.Size = 128
	cfg.QRCode.ErrorCorrectionLevel = "M"

	svc := NewQRCodeService(cfg)

	png, err := svc.GenerateProductQR(uuid.New())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader), "expected PNG output")
}

func TestNewQRCodeService_UnknownLevelFallsBackToMedium(t *testing.T) {
	cfg := &config.Config{}
	cfg.Platform.BaseURL = "https://souqlink.example"
	cfg.QRCode.Size = 64
	cfg.QRCode.ErrorCorrectionLevel = "X"

	svc := NewQRCodeService(cfg)

	png, err := svc.GenerateProductQR(uuid.New())
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
