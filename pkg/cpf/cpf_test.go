package cpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid("52998224725"))
	assert.True(t, Valid("12345678909"))
}

func TestInvalidChecksum(t *testing.T) {
	assert.False(t, Valid("12345678901"))
	assert.False(t, Valid("52998224726"))
}

func TestRepeatedDigitsRejected(t *testing.T) {
	for _, s := range []string{
		"00000000000", "11111111111", "22222222222", "33333333333",
		"44444444444", "55555555555", "66666666666", "77777777777",
		"88888888888", "99999999999",
	} {
		assert.False(t, Valid(s), s)
	}
}

func TestMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"5299822472",    // too short
		"529982247255",  // too long
		"5299822472a",   // non-digit
		"529.982.247-2", // punctuation
		"abcdefghijk",
	}
	for _, s := range cases {
		assert.False(t, Valid(s), s)
	}
}
