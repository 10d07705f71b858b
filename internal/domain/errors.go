package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada modo de fallo del core
// es distinguible por centinela para que el caller elija el UX apropiado
// (error de campo, diálogo bloqueante, reintento).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrClassificationInUse = errors.New("la clasificación tiene movimientos asociados")
	ErrAtomicityViolation  = errors.New("la operación atómica no pudo completarse")
)
