package agriassist

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenExpiry is how long a session token stays valid.
const SessionTokenExpiry = 7 * 24 * time.Hour

// SessionSigner issues and verifies the stateless session tokens handed
// out at signup and login. A token carries only the user id; verification
// is signature + expiry, with no store lookup.
type SessionSigner struct {
	SecretKey string
	Issuer    string        // optional iss claim
	Expiry    time.Duration // defaults to SessionTokenExpiry
}

// CreateToken signs a session token for the given user.
func (s *SessionSigner) CreateToken(userID string) (string, error) {
	expiry := s.Expiry
	if expiry == 0 {
		expiry = SessionTokenExpiry
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(expiry).Unix(),
	}
	if s.Issuer != "" {
		claims["iss"] = s.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken validates a session token and returns the user id it names.
func (s *SessionSigner) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.SecretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("token validation failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}

	if s.Issuer != "" {
		if iss, ok := claims["iss"].(string); !ok || iss != s.Issuer {
			return "", fmt.Errorf("invalid issuer")
		}
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("missing subject")
	}
	return userID, nil
}
