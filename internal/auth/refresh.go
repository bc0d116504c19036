package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/samber/oops"
)

const (
	RefreshTokenBytes = 64
	RefreshCookieName = "refreshToken"
	RefreshCookiePath = "/api/auth"
)

// GenerateRefreshToken returns a random token for the client. Only its hash
// is ever stored.
func GenerateRefreshToken() (string, error) {
	b := make([]byte, RefreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", oops.Code("AUTH_TOKEN_FAILED").Wrap(err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
