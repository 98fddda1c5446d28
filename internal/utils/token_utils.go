package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LedgerClaims are the JWT claims understood by the API.
// The subject is the user id.
type LedgerClaims struct {
	Organizations []string `json:"orgs,omitempty"`
	Permissions   []string `json:"perms,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT signs an HS256 token granting userID the given organizations and capabilities.
func GenerateJWT(userID, secret, issuer string, orgs, perms []string, expiryDuration time.Duration) (string, error) {
	now := time.Now()
	claims := LedgerClaims{
		Organizations: orgs,
		Permissions:   perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string, validates its signature and standard claims.
// When issuer is non-empty the iss claim must match it.
func ParseAndValidateJWT(tokenString, secretKey, issuer string) (*LedgerClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &LedgerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
