package services

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// EncodeQRPNG encodes payload at the highest error-correction level and
// resizes the symbol to a size x size PNG.
func EncodeQRPNG(payload string, size int) ([]byte, error) {
	q, err := qrcode.New(payload, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}

	src := q.Image(-10)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode QR image: %w", err)
	}
	return buf.Bytes(), nil
}
