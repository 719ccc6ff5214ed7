package qrcode

import qr "github.com/skip2/go-qrcode"

// Generate creates a QR code PNG image for the given URL.
func Generate(url string) ([]byte, error) {
	return qr.Encode(url, qr.Medium, 256)
}

// Terminal renders a QR code as half-block characters for terminal
// output, so the login verification URL can be scanned from the screen.
func Terminal(url string) (string, error) {
	code, err := qr.New(url, qr.Medium)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}
