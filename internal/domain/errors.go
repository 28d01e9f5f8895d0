package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	// ErrEmptyItems se devuelve cuando una factura quedaría sin líneas.
	ErrEmptyItems = errors.New("la factura debe tener al menos una línea")
)
