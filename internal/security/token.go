package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a sign-in token fails verification
var ErrInvalidToken = errors.New("invalid sign-in token")

// signInClaims are the claims carried by a custom sign-in token. The uid
// claim is the learner identity the holder signs in as.
type signInClaims struct {
	jwt.RegisteredClaims
	UID string `json:"uid"`
}

// TokenVerifier validates custom sign-in tokens minted with MintSignInToken
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for tokens signed with secret
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// VerifyToken checks the token signature and expiry and returns the
// learner identity from the uid claim
func (v *TokenVerifier) VerifyToken(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	claims := &signInClaims{}

	parsedToken, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !parsedToken.Valid {
		return "", ErrInvalidToken
	}
	if claims.UID == "" {
		return "", fmt.Errorf("%w: missing uid claim", ErrInvalidToken)
	}
	return claims.UID, nil
}

// MintSignInToken creates a signed sign-in token for the given learner
// identity. Operators hand these out for pre-provisioned accounts; the
// tokengen command wraps this.
func MintSignInToken(secret, uid string, ttl time.Duration) (string, error) {
	if uid == "" {
		return "", fmt.Errorf("uid is required")
	}

	now := time.Now()
	claims := signInClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID: uid,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
