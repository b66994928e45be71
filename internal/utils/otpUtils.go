package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const otpChars = "0123456789"

// GenerateOTP draws length uniformly distributed decimal digits from crypto/rand.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.Grow(length)
	base := big.NewInt(int64(len(otpChars)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		sb.WriteByte(otpChars[n.Int64()])
	}

	return sb.String(), nil
}
