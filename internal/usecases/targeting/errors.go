package targeting

import "github.com/pkg/errors"

var (
	ErrStoreUnavailable = errors.New("banco não configurado: gravação indisponível")
	ErrInvalidIntel     = errors.New("inteligência de segmentação inválida")
)

// IsValidationError verifica se o erro foi causado por dados de entrada inválidos
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidIntel)
}
