package service

import (
	"fmt"
	"time"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes a share link for a confirmed snapshot so
// staff can pull up the confirmed-orders view on another device.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(confirmedAt time.Time) ([]byte, error) {
	link := fmt.Sprintf("%s/confirmed.html?at=%d", g.BaseURL, confirmedAt.UnixMilli())
	return qrcode.Encode(link, qrcode.Medium, 256)
}
