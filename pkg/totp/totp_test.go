package totp

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	e := NewEngine("cadastro-api")
	s1, err := e.GenerateSecret("a@x.com")
	require.NoError(t, err)
	s2, err := e.GenerateSecret("a@x.com")
	require.NoError(t, err)

	assert.NotEmpty(t, s1)
	assert.NotEqual(t, s1, s2, "secrets must be random per enrollment")
}

func TestValidateCodeWithinWindow(t *testing.T) {
	e := NewEngine("cadastro-api")
	secret, err := e.GenerateSecret("a@x.com")
	require.NoError(t, err)

	now := time.Now()
	for _, offset := range []time.Duration{-30 * time.Second, 0, 30 * time.Second} {
		code, err := totp.GenerateCode(secret, now.Add(offset))
		require.NoError(t, err)
		assert.True(t, e.ValidateCode(secret, code), "offset %v", offset)
	}
}

func TestValidateCodeRejectsWrongCode(t *testing.T) {
	e := NewEngine("cadastro-api")
	secret, err := e.GenerateSecret("a@x.com")
	require.NoError(t, err)

	// Collect every code valid in the tolerance window, then pick one
	// guaranteed not to be among them.
	now := time.Now()
	valid := map[string]bool{}
	for _, offset := range []time.Duration{-30 * time.Second, 0, 30 * time.Second} {
		code, err := totp.GenerateCode(secret, now.Add(offset))
		require.NoError(t, err)
		valid[code] = true
	}
	wrong := ""
	for _, candidate := range []string{"000000", "111111", "222222", "333333"} {
		if !valid[candidate] {
			wrong = candidate
			break
		}
	}
	require.NotEmpty(t, wrong)
	assert.False(t, e.ValidateCode(secret, wrong))
}

func TestValidateCodeMalformed(t *testing.T) {
	e := NewEngine("cadastro-api")
	secret, err := e.GenerateSecret("a@x.com")
	require.NoError(t, err)

	for _, code := range []string{"", "123", "12345678", "12a456", "abcdef"} {
		assert.False(t, e.ValidateCode(secret, code), code)
	}
}

func TestProvisioningURI(t *testing.T) {
	e := NewEngine("cadastro-api")
	uri := e.ProvisioningURI("a@x.com", "JBSWY3DPEHPK3PXP")

	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/"))
	assert.Contains(t, uri, "secret=JBSWY3DPEHPK3PXP")
	assert.Contains(t, uri, "issuer=cadastro-api")
	assert.Contains(t, uri, "algorithm=SHA1")
	assert.Contains(t, uri, "digits=6")
	assert.Contains(t, uri, "period=30")
}

func TestQRCodeDataURI(t *testing.T) {
	e := NewEngine("cadastro-api")
	secret, err := e.GenerateSecret("a@x.com")
	require.NoError(t, err)

	qr, err := e.QRCodeDataURI("a@x.com", secret)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))
	assert.Greater(t, len(qr), len("data:image/png;base64,"))
}
