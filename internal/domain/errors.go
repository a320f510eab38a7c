package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrCorruptData  = errors.New("datos persistidos corruptos")
	ErrPersistence  = errors.New("no se pudo persistir la lista")
)
