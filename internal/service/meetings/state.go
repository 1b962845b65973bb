package meetings

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const stateTTL = 10 * time.Minute

// stateCodec кодирует userID в параметр state OAuth-авторизации
// Без секрета state равен userID как есть
type stateCodec struct {
	secret []byte
}

func (c stateCodec) encode(userID string, now time.Time) (string, error) {
	if len(c.secret) == 0 {
		return userID, nil
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return signed, nil
}

func (c stateCodec) decode(state string, now time.Time) (string, error) {
	if state == "" {
		return "", errors.New("empty state")
	}
	if len(c.secret) == 0 {
		return state, nil
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(state, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("state without subject")
	}
	return claims.Subject, nil
}
