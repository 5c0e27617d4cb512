// Package auth mints and verifies the bearer tokens that protect the API
// server. A single HMAC secret from the server config is enough here -
// there is one user and no key rotation surface.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const TOKEN_SUBJECT = "owner"

type LifelineTokenClaims struct {
	jwt.StandardClaims
}

func EncodeJWT(secret string, ttl time.Duration) (string, error) {
	claims := LifelineTokenClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   TOKEN_SUBJECT,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod("HS256"), claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func DecodeJWT(tokenString, secret string) (*LifelineTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LifelineTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid jwt: %v", err)
	}

	tokenClaims, ok := token.Claims.(*LifelineTokenClaims)
	if !ok {
		return nil, fmt.Errorf("unable to assert token.Claims to LifelineTokenClaims")
	}

	return tokenClaims, nil
}
