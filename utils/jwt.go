package utils

import (
	"errors"

	"meetbook/config"

	"github.com/golang-jwt/jwt"
)

// PrincipalClaims is what the external auth service puts in the tokens it
// issues. This service never mints tokens, it only reads them.
type PrincipalClaims struct {
	ID    string
	Email string
	Role  string
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
}

// ExtractPrincipal extracts the principal identity (subject, email, role)
// from a valid token string issued by the auth collaborator.
func ExtractPrincipal(tokenString string) (*PrincipalClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	p := &PrincipalClaims{ID: sub}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		p.Role = role
	}
	return p, nil
}
