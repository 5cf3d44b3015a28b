package security

import (
	"crypto/rand"

	"github.com/baechuer/eventflow/internal/domain"
)

type OTPGenerator struct {
	digits int
}

func NewOTPGenerator(digits int) *OTPGenerator {
	if digits <= 0 {
		digits = 6
	}
	return &OTPGenerator{digits: digits}
}

// Generate returns a numeric one-time code from crypto/rand.
func (g *OTPGenerator) Generate() (string, error) {
	b := make([]byte, g.digits)
	if _, err := rand.Read(b); err != nil {
		return "", domain.ErrRandomFailed(err)
	}
	code := make([]byte, g.digits)
	for i := range b {
		code[i] = '0' + (b[i] % 10)
	}
	return string(code), nil
}
