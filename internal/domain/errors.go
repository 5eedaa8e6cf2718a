package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") y la capa HTTP los
// clasifica con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("datos inválidos")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// ErrInvalidInput alias histórico de ErrValidation.
var ErrInvalidInput = ErrValidation

// IsBusiness indica si err es un error de negocio esperado. El resto se trata
// como fallo de almacenamiento (500).
func IsBusiness(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrValidation, ErrDuplicate, ErrInsufficientStock,
		ErrInvalidTransition, ErrUserNotFound, ErrEmailAlreadyExists,
		ErrUnauthorized, ErrForbidden,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
