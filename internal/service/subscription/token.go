package subscription

import (
	"crypto/rand"
	"fmt"
)

// TokenLength is the number of characters in a confirmation token.
const TokenLength = 25

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateToken returns 25 random alphanumeric characters from a CSPRNG.
// Uniqueness is not guaranteed here; the database enforces it and the
// store surfaces a collision as ErrDuplicateToken.
func GenerateToken() (string, error) {
	// rejection sampling keeps the 62-character alphabet unbiased
	const max = byte(len(tokenAlphabet) * (256 / len(tokenAlphabet))) // 248

	out := make([]byte, 0, TokenLength)
	buf := make([]byte, 2*TokenLength)
	for len(out) < TokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == TokenLength {
				break
			}
		}
	}
	return string(out), nil
}
