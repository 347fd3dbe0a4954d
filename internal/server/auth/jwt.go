package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pixeldrop/pixeldrop/internal/common"
)

// sessionSubject marks tokens produced by the credential gate. The gate
// authenticates a shared secret, not a user, so there is no per-user claim.
const sessionSubject = "upload-session"

type Claims struct {
	jwt.RegisteredClaims
}

func GenerateToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ValidateToken(tokenString string, secretKey []byte) error {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretKey, nil
	})
	if err != nil {
		return common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject != sessionSubject {
		return common.ErrInvalidToken
	}

	return nil
}
