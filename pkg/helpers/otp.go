package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var otpSpace = big.NewInt(1_000_000)

// GenOTPCode returns a uniformly random six digit code, zero padded.
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", fmt.Errorf("otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// OTPGenerator is the CodeGenerator the services use in production.
type OTPGenerator struct{}

func (OTPGenerator) Generate() (string, error) { return GenOTPCode() }
