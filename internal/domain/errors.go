package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// mapean a códigos de estado; el motor nunca los degrada a truncamientos
// silenciosos ni reintenta internamente.
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrInconsistency es defensivo: la asignación FIFO no pudo cubrir una
	// cantidad que pasó el chequeo de total. Indica bug de lógica o de
	// bloqueo; no debería ocurrir.
	ErrInconsistency = errors.New("inconsistencia interna de inventario")

	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
