package utils

import (
	"crypto/rand"
	"fmt"
)

// GenerateRandomDigits returns a string of n cryptographically random decimal digits.
// Leading zeros are allowed, so every position is uniform over 0-9.
func GenerateRandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			// 250 is the largest multiple of 10 below 256; rejecting above it avoids modulo bias.
			if b >= 250 {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
