package pincode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generation limits. Codes shorter than 4 digits are guessable within a
// 10-minute validity window; longer than 10 overflows the storage column.
const (
	MinLength = 4
	MaxLength = 10
)

// Generate returns a numeric code of the given length drawn from
// crypto/rand. The code is uniformly distributed over all length-digit
// strings, leading zeros included, so every digit contributes entropy.
func Generate(length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", fmt.Errorf("pin length must be between %d and %d, got %d", MinLength, MaxLength, length)
	}

	limit := big.NewInt(1)
	for i := 0; i < length; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate pin: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n), nil
}
