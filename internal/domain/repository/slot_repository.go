package repository

import "context"

// SlotStore define el puerto de almacenamiento clave-valor local (DIP).
// Cada clave es un "slot" con un único valor de texto; Put sobrescribe de forma atómica.
type SlotStore interface {
	// Get devuelve el valor y true si la clave existe; false sin error si no existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
