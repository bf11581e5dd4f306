package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el correo ya está registrado")
	ErrUserNameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrValidation            = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrConflict              = errors.New("conflicto con el estado actual")

	// Autenticación: credenciales incorrectas (mensaje uniforme, no revela si el correo existe).
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	// Sin principal autenticado. Los fallos del token los reporta pkg/jwt.
	ErrUnauthenticated = errors.New("no autenticado")

	// Autorización: principal válido sin el permiso requerido.
	ErrForbidden = errors.New("acceso denegado")
)

// ValidationError detalla los campos inválidos. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Fields map[string]string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError construye un error de validación con un mensaje accionable.
func NewValidationError(msg string, fields map[string]string) *ValidationError {
	return &ValidationError{Msg: msg, Fields: fields}
}
