package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// generateOTP returns a 6-digit numeric code with leading zeros kept.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// hashOTP stores codes peppered so a leaked users table alone is not
// enough to complete a verification.
func hashOTP(code, pepper string) string {
	sum := sha256.Sum256([]byte(code + pepper))
	return hex.EncodeToString(sum[:])
}
