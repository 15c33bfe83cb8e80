package webhooks

import (
	"crypto/rand"
	"encoding/hex"
)

const (
	tokenPrefix = "ppt_"
	// 24 random bytes, 192 bits of entropy.
	tokenEntropyBytes = 24
)

// GenerateToken returns a new opaque access token: a fixed prefix so
// operators can recognise the credential, plus a hex-encoded random suffix.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return tokenPrefix + hex.EncodeToString(buf), nil
}

// MaskToken renders a token for display after creation: first 6 and last 4
// characters visible, the rest elided. The plaintext is only shown once.
func MaskToken(token string) string {
	if len(token) <= 10 {
		return token
	}
	return token[:6] + "..." + token[len(token)-4:]
}
