package agriassist

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Secret lifetimes. OTPs are short-lived; reset tokens get a wider window
// because they travel by email.
const (
	OTPLength        = 6
	OTPExpiry        = 5 * time.Minute
	ResetTokenExpiry = 30 * time.Minute
)

// Verification outcomes for a stored hash/expiry pair.
var (
	errNoPendingSecret = errors.New("no pending secret")
	errSecretExpired   = errors.New("secret expired")
	errSecretMismatch  = errors.New("secret mismatch")
)

// GenerateNumericOTP returns a random 6-digit verification code.
func GenerateNumericOTP() (string, error) {
	var sb strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < OTPLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate otp: %w", err)
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}

// GenerateResetToken returns a high-entropy random token for password
// reset links.
func GenerateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashSecret hashes a password, OTP or reset token with bcrypt. The raw
// secret is never persisted; only this hash is.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}

// CheckSecret compares a candidate against a bcrypt hash.
func CheckSecret(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// verifySecret checks a candidate against a pending hash/expiry pair.
// The pair counts as pending only when both halves are set.
func verifySecret(hash string, expiresAt *time.Time, candidate string) error {
	if hash == "" || expiresAt == nil {
		return errNoPendingSecret
	}
	if !time.Now().Before(*expiresAt) {
		return errSecretExpired
	}
	if !CheckSecret(hash, candidate) {
		return errSecretMismatch
	}
	return nil
}

// issueSecret hashes a freshly generated secret and returns the pair to
// store. Overwrites any previous pending secret for the same channel;
// the loser of that race simply holds a dead code.
func issueSecret(secret string, ttl time.Duration) (hash string, expiresAt *time.Time, err error) {
	hash, err = HashSecret(secret)
	if err != nil {
		return "", nil, err
	}
	t := time.Now().Add(ttl)
	return hash, &t, nil
}
