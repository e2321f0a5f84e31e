package authenticating

import (
	"errors"
)

var (
	ErrInvalidToken = errors.New("token inválido")
	ErrExpiredToken = errors.New("token expirado")
	ErrMissingToken = errors.New("token ausente")
)

// IsExpired verifica se o erro indica token expirado
func IsExpired(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}
