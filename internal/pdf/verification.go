package pdf

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// verificationAlphabet leaves out characters that are easy to misread on paper.
const verificationAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewVerificationCode returns a code like "7KQ4-M2XD-P9TA" printed on every
// affidavit so the recipient can confirm it was issued by the company.
func NewVerificationCode() (string, error) {
	raw := make([]byte, 12)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	var b strings.Builder
	for i, v := range raw {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(verificationAlphabet[int(v)%len(verificationAlphabet)])
	}
	return b.String(), nil
}

// VerificationURL joins the public base URL and the code.
func VerificationURL(baseURL, code string) string {
	return strings.TrimRight(baseURL, "/") + "/verify/" + code
}

// VerificationQR encodes url as a PNG QR code of size pixels.
func VerificationQR(url string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode verification qr: %w", err)
	}
	return png, nil
}
