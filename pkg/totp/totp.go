// Package totp wraps RFC 6238 one-time-password generation and
// verification for the two-factor enrollment flow.
package totp

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"net/url"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// ErrImageEncoding wraps QR rendering failures. It is the only error this
// package produces; code validation never errors, it just returns false.
var ErrImageEncoding = errors.New("qr image encoding failed")

const (
	qrWidth  = 200
	qrHeight = 200
)

// Engine issues and verifies TOTP secrets for a fixed issuer label.
type Engine struct {
	Issuer string
}

func NewEngine(issuer string) *Engine {
	return &Engine{Issuer: issuer}
}

// GenerateSecret returns a fresh base32-encoded secret with the library
// default entropy (160 bits, SHA1-compatible with authenticator apps).
func (e *Engine) GenerateSecret(account string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      e.Issuer,
		AccountName: account,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("generate totp secret: %w", err)
	}
	return key.Secret(), nil
}

// ProvisioningURI builds the otpauth:// URI understood by authenticator
// apps. Pure function of its inputs.
func (e *Engine) ProvisioningURI(account, secret string) string {
	return fmt.Sprintf(
		"otpauth://totp/%s:%s?secret=%s&issuer=%s&algorithm=SHA1&digits=6&period=30",
		url.PathEscape(e.Issuer), url.PathEscape(account), secret, url.QueryEscape(e.Issuer),
	)
}

// QRCodeDataURI renders the provisioning URI as a PNG QR code and returns
// it as an embeddable base64 data URI.
func (e *Engine) QRCodeDataURI(account, secret string) (string, error) {
	key, err := otp.NewKeyFromURL(e.ProvisioningURI(account, secret))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageEncoding, err)
	}
	img, err := key.Image(qrWidth, qrHeight)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageEncoding, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageEncoding, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ValidateCode reports whether code matches the expected value for the
// current 30 s step, tolerating one step of clock skew either side.
// Malformed codes are invalid, never an error.
func (e *Engine) ValidateCode(secret, code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return totp.Validate(code, secret)
}
