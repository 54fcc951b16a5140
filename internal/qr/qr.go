// Package qr builds and renders the receipt payload shown on the
// confirmation screen.
package qr

import (
	"encoding/json"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered QR side length in pixels.
const DefaultSize = 200

// Payload is the JSON document encoded into the receipt QR code. Timestamp
// marshals as ISO-8601 via time.Time's default encoding.
type Payload struct {
	Vegetable   string    `json:"vegetable"`
	WeightGrams float64   `json:"weight"`
	Price       float64   `json:"price"`
	Timestamp   time.Time `json:"timestamp"`
	SessionID   string    `json:"sessionId"`
}

// Encode serializes the payload to its wire form.
func (p Payload) Encode() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr payload: %w", err)
	}
	return data, nil
}

// Render encodes the payload into a PNG QR image of the given side length.
// Non-positive sizes fall back to DefaultSize.
func Render(p Payload, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}

	data, err := p.Encode()
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return png, nil
}
